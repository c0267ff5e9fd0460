package service

import (
	"go.uber.org/zap"

	"github.com/libraryman/libraryman-api/config"
	"github.com/libraryman/libraryman-api/internal/repository"
	"github.com/libraryman/libraryman-api/pkg/kafka"
)

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	events kafka.Emitter
	policy config.Borrowing
}

func NewService(repo repository.Repository, events kafka.Emitter, policy config.Borrowing, log *zap.Logger) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		events: events,
		policy: policy,
	}
}
