package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

type Config struct {
	Secret string `yaml:"secret" envconfig:"JWT_SECRET" default:"libraryman-dev-secret" json:"-"`
}

type Role string

const (
	RoleUser      Role = "USER"
	RoleLibrarian Role = "LIBRARIAN"
	RoleAdmin     Role = "ADMIN"
)

func (r Role) Staff() bool {
	return r == RoleLibrarian || r == RoleAdmin
}

type Claims struct {
	jwt.RegisteredClaims
	MemberID int    `json:"memberId"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

type contextKey int

const claimsKey contextKey = iota + 1

func SetAuthContext(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

// Action names a guarded operation of the API surface.
type Action int

const (
	ManageBooks Action = iota + 1
	ListBorrowings
	ViewBorrowing
	CreateBorrowing
	ListMemberBorrowings
	ReturnBorrowing
	PayFine
	ViewAnalytics
)

// Resource carries the owning member of the entity an action targets.
// Zero MemberID means the action is not member-scoped.
type Resource struct {
	MemberID int
}

// Allowed is the authorization predicate evaluated before each handler
// delegates. USER may act only on their own member id where the action
// is member-scoped.
func Allowed(c Claims, action Action, res Resource) bool {
	switch action {
	case ManageBooks, ListBorrowings, ViewBorrowing, ViewAnalytics:
		return c.Role.Staff()
	case CreateBorrowing, ListMemberBorrowings:
		return c.Role.Staff() || (c.Role == RoleUser && c.MemberID == res.MemberID)
	case ReturnBorrowing, PayFine:
		return c.Role == RoleUser || c.Role.Staff()
	}
	return false
}

func Sign(cfg Config, claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

func Parse(cfg Config, tokenStr string) (Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	return *claims, nil
}
