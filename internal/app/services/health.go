package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fr0stylo/msgsink/internal/app/ports"
)

// HealthService answers liveness and readiness probes.
type HealthService struct {
	secretConfigured bool
	store            ports.MessageStore
	log              *slog.Logger
}

// NewHealthService constructs a health service.
func NewHealthService(secretConfigured bool, store ports.MessageStore, log *slog.Logger) *HealthService {
	if log == nil {
		log = slog.Default()
	}
	return &HealthService{secretConfigured: secretConfigured, store: store, log: log}
}

// Ready fails when the webhook secret is unset or the store cannot be reached.
func (s *HealthService) Ready(ctx context.Context) error {
	if !s.secretConfigured {
		s.log.WarnContext(ctx, "readiness_failed", "result", "unready", "error", ErrSecretNotConfigured)
		return ErrSecretNotConfigured
	}
	if err := s.store.Ping(ctx); err != nil {
		s.log.ErrorContext(ctx, "readiness_failed", "result", "unready", "error", err)
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}
