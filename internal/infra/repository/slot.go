package repository

import (
	"context"
	"time"

	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/infra"

	"github.com/google/uuid"
)

const (
	findNextAvailableSlotSQL = `
		SELECT id, start_time, end_time, is_reserved, version
		FROM available_slots
		WHERE is_reserved = FALSE AND start_time >= $1
		ORDER BY start_time ASC
		LIMIT 1`

	findSlotByIDSQL = `
		SELECT id, start_time, end_time, is_reserved, version
		FROM available_slots
		WHERE id = $1`

	claimSlotSQL = `
		UPDATE available_slots
		SET is_reserved = TRUE, version = version + 1
		WHERE id = $1 AND version = $2 AND is_reserved = FALSE`

	releaseSlotSQL = `
		UPDATE available_slots
		SET is_reserved = FALSE, version = version + 1
		WHERE id = $1`
)

type SlotRepository struct {
	db DB
}

func NewSlotRepository(db DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) FindNextAvailable(ctx context.Context, now time.Time) (*slot.Slot, error) {
	return r.scanSlot(r.db.QueryRow(ctx, findNextAvailableSlotSQL, now), "no eligible slot found")
}

func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	return r.scanSlot(r.db.QueryRow(ctx, findSlotByIDSQL, id), "slot not found")
}

// Claim is the single optimistic-check-and-write step every writer goes
// through. Zero rows affected means the version moved under us.
func (r *SlotRepository) Claim(ctx context.Context, id uuid.UUID, version int64) error {
	tag, err := r.db.Exec(ctx, claimSlotSQL, id, version)
	if err != nil {
		return infra.WrapRepoErr("failed to claim slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot version changed since read", nil, infra.KindConflict)
	}
	return nil
}

func (r *SlotRepository) Release(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, releaseSlotSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to release slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SlotRepository) scanSlot(row interface{ Scan(dest ...any) error }, notFoundMsg string) (*slot.Slot, error) {
	var s slot.Slot
	err := row.Scan(&s.ID, &s.StartTime, &s.EndTime, &s.Reserved, &s.Version)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr(notFoundMsg, err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan slot", err)
	}
	return &s, nil
}
