package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/libraryman/libraryman-api/config"
	"github.com/libraryman/libraryman-api/internal/handler"
	"github.com/libraryman/libraryman-api/internal/repository"
	"github.com/libraryman/libraryman-api/internal/server"
	"github.com/libraryman/libraryman-api/internal/service"
	"github.com/libraryman/libraryman-api/migrations"
	"github.com/libraryman/libraryman-api/pkg/kafka"
	"github.com/libraryman/libraryman-api/pkg/logger"
	"github.com/libraryman/libraryman-api/pkg/postgres"
)

func Run(cfg config.Config) {
	log := logger.NewLogger(cfg.Log, "libraryman")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	var emitter kafka.Emitter = kafka.NopEmitter{}
	if len(cfg.Kafka.Addrs) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		defer producer.Close() //nolint:errcheck
		emitter = kafka.NewEmitter(producer, cfg.Kafka.Topic)
	}

	svc := service.NewService(repo, emitter, cfg.Borrowing, log)

	h := handler.New(svc, svc, cfg.Auth, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
