package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/libraryman/libraryman-api/pkg/auth"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	user := auth.Claims{MemberID: 7, Role: auth.RoleUser}
	librarian := auth.Claims{MemberID: 1, Role: auth.RoleLibrarian}
	admin := auth.Claims{MemberID: 2, Role: auth.RoleAdmin}
	anonymous := auth.Claims{}

	var tests = []struct {
		name   string
		claims auth.Claims
		action auth.Action
		res    auth.Resource
		want   bool
	}{
		{"user cannot manage books", user, auth.ManageBooks, auth.Resource{}, false},
		{"librarian manages books", librarian, auth.ManageBooks, auth.Resource{}, true},
		{"admin manages books", admin, auth.ManageBooks, auth.Resource{}, true},
		{"user cannot list all borrowings", user, auth.ListBorrowings, auth.Resource{}, false},
		{"admin lists all borrowings", admin, auth.ListBorrowings, auth.Resource{}, true},
		{"user borrows for own member id", user, auth.CreateBorrowing, auth.Resource{MemberID: 7}, true},
		{"user cannot borrow for another member", user, auth.CreateBorrowing, auth.Resource{MemberID: 8}, false},
		{"librarian borrows for any member", librarian, auth.CreateBorrowing, auth.Resource{MemberID: 8}, true},
		{"user views own borrowings", user, auth.ListMemberBorrowings, auth.Resource{MemberID: 7}, true},
		{"user cannot view another member's borrowings", user, auth.ListMemberBorrowings, auth.Resource{MemberID: 9}, false},
		{"user returns a book", user, auth.ReturnBorrowing, auth.Resource{}, true},
		{"user pays a fine", user, auth.PayFine, auth.Resource{}, true},
		{"user cannot view analytics", user, auth.ViewAnalytics, auth.Resource{}, false},
		{"anonymous can do nothing", anonymous, auth.ReturnBorrowing, auth.Resource{}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, auth.Allowed(tt.claims, tt.action, tt.res))
		})
	}
}

func TestSignParse(t *testing.T) {
	t.Parallel()
	cfg := auth.Config{Secret: "test-secret"}
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		MemberID: 42,
		Name:     "Test Max",
		Role:     auth.RoleLibrarian,
	}

	token, err := auth.Sign(cfg, claims)
	require.NoError(t, err)

	parsed, err := auth.Parse(cfg, token)
	require.NoError(t, err)
	require.Equal(t, 42, parsed.MemberID)
	require.Equal(t, auth.RoleLibrarian, parsed.Role)

	_, err = auth.Parse(auth.Config{Secret: "other-secret"}, token)
	require.Error(t, err)
}
