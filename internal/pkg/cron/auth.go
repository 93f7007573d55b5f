package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/angkorhr/hrms-backend-go/internal/pkg/clock"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/jwt"
)

// AuthJobs contains auth-related cron jobs
type AuthJobs struct {
	jwtService jwt.Service
	clk        clock.Clock
}

// NewAuthJobs creates auth cron jobs
func NewAuthJobs(jwtService jwt.Service, clk clock.Clock) *AuthJobs {
	return &AuthJobs{jwtService: jwtService, clk: clk}
}

// RegisterJobs registers all auth-related cron jobs
func (j *AuthJobs) RegisterJobs(scheduler *Scheduler) {
	// The revocation set lives in memory, so it needs periodic pruning or
	// every logout grows it for the life of the process.
	scheduler.Register(Job{
		Name:     "prune_revoked_tokens",
		Interval: 1 * time.Hour,
		Run:      j.PruneRevokedTokens,
	})
}

// PruneRevokedTokens drops revocation entries for tokens that have expired on
// their own.
func (j *AuthJobs) PruneRevokedTokens(ctx context.Context) error {
	if removed := j.jwtService.PruneRevokedTokens(j.clk.Now()); removed > 0 {
		slog.Info("revoked token entries pruned", "removed", removed)
	}
	return nil
}
