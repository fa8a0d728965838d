package service

import (
	"context"
	"fmt"
	"time"

	mongotx "tourism/pkg/db/mongo"
	apperrors "tourism/pkg/errors"
	"tourism/pkg/model"
)

func slotLockID(guideID, date string) string {
	return fmt.Sprintf("slot_lock_%s_%s", guideID, date)
}

// acquireLock takes the advisory lock for one guide and day. A held lock is
// reported as a conflict so the caller can retry.
func (s *availabilityService) acquireLock(ctx context.Context, guideID, date string) (string, error) {
	lockID := slotLockID(guideID, date)
	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: s.now().UTC().Add(s.lockTTL()),
	}

	if err := s.locks.Create(ctx, lock); err != nil {
		if mongotx.IsDuplicateKey(err) {
			return "", apperrors.Conflict(fmt.Sprintf("Availability for %s is being changed by another request, retry shortly", date))
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}
	return lockID, nil
}

func (s *availabilityService) releaseLock(ctx context.Context, lockID string) {
	if err := s.locks.Delete(context.WithoutCancel(ctx), lockID); err != nil {
		s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", err)
	}
}

func (s *availabilityService) lockTTL() time.Duration {
	if s.cfg.SlotLockTTL > 0 {
		return s.cfg.SlotLockTTL
	}
	return 30 * time.Second
}
