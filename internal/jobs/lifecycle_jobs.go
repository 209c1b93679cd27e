package jobs

import (
	"context"
	"errors"
	"time"

	"bizdesk-backend/internal/domain"
	"bizdesk-backend/internal/logger"
)

// systemActor performs scheduled transitions. It is recorded in the ledgers
// like any administrator.
var systemActor = domain.Actor{
	ID:   "system",
	Name: "System Scheduler",
}

// ReactivateExpiredSuspensions lifts tenants whose suspension window has
// passed back to active. It goes through the ordinary reactivate transition
// so every lift is audited and notified like an admin action. A tenant whose
// status changed concurrently is skipped; the next run picks it up if the
// suspension still stands.
func (j *JobRunner) ReactivateExpiredSuspensions() {
	ctx := context.Background()
	now := time.Now().UTC()

	expired, err := j.tenantRepo.ListSuspensionExpired(ctx, now)
	if err != nil {
		logger.Error("failed to list expired suspensions", "error", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	var lifted int
	for _, t := range expired {
		_, err := j.lifecycle.Reactivate(ctx, systemActor, t.ID, "suspension period expired", false)
		if err != nil {
			if errors.Is(err, domain.ErrStaleState) {
				logger.Warn("tenant changed concurrently, skipping", "tenant_id", t.ID)
				continue
			}
			logger.Error("failed to reactivate suspended tenant", "tenant_id", t.ID, "error", err)
			continue
		}
		lifted++
	}
	logger.Info("expired suspensions processed", "candidates", len(expired), "reactivated", lifted)
}
