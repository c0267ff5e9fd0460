package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/libraryman/libraryman-api/pkg/auth"
	"github.com/libraryman/libraryman-api/pkg/kafka"
	"github.com/libraryman/libraryman-api/pkg/logger"
	"github.com/libraryman/libraryman-api/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration
}

// Borrowing holds the loan policy. The fine rate is configuration,
// never a constant at call sites.
type Borrowing struct {
	BorrowDays int `yaml:"borrowDays" envconfig:"BORROW_DAYS" default:"14"`
	FinePerDay int `yaml:"finePerDay" envconfig:"FINE_PER_DAY" default:"10"`
}

type Config struct {
	Server    HTTPServer `yaml:"server"`
	Database  postgres.Config
	Kafka     kafka.Config
	Auth      auth.Config
	Borrowing Borrowing
	Log       logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = d
	}
}
