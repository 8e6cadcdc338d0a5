package services

import (
	"context"
	"fmt"
	"time"

	"chatarra-market/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// CronService runs the background maintenance jobs
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	tokenCleanupSpec string
}

// NewCronService creates a cron service. tokenCleanupSpec is a standard
// five-field cron expression.
func NewCronService(refreshTokenRepo repositories.RefreshTokenRepository, tokenCleanupSpec string) *CronService {
	return &CronService{
		cron:             cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		refreshTokenRepo: refreshTokenRepo,
		tokenCleanupSpec: tokenCleanupSpec,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.tokenCleanupSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		_, _ = s.PurgeRefreshTokens(ctx)
	}); err != nil {
		return fmt.Errorf("schedule token cleanup %q: %w", s.tokenCleanupSpec, err)
	}

	s.cron.Start()
	log.Info().Str("token_cleanup", s.tokenCleanupSpec).Msg("cron service started")
	return nil
}

// Stop waits for running jobs to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("cron service stopped")
}

// PurgeRefreshTokens deletes refresh tokens that expired or were revoked
// before now
func (s *CronService) PurgeRefreshTokens(ctx context.Context) (int64, error) {
	n, err := s.refreshTokenRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("refresh token cleanup failed")
		return 0, err
	}
	log.Info().Int64("deleted", n).Msg("refresh token cleanup done")
	return n, nil
}
