package slot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyReserved = errors.New("slot is already reserved")
	ErrNotReserved     = errors.New("slot is not reserved")
	ErrInvalidWindow   = errors.New("slot end time must be after start time")
)

// Slot is one bookable unit of time. Version is the optimistic-lock stamp:
// every persisted write bumps it, and a claim only commits when the version
// it read is still current.
type Slot struct {
	ID        uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Reserved  bool
	Version   int64
}

func New(id uuid.UUID, start, end time.Time) (*Slot, error) {
	if !end.After(start) {
		return nil, ErrInvalidWindow
	}
	return &Slot{
		ID:        id,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// Claim marks the slot reserved. The false→true transition happens at most
// once per allocation cycle; the store enforces the same rule with the
// version check, this guard keeps in-memory state honest.
func (s *Slot) Claim() error {
	if s.Reserved {
		return ErrAlreadyReserved
	}
	s.Reserved = true
	s.Version++
	return nil
}

// Release frees the slot after a cancellation or an expiry reclaim.
func (s *Slot) Release() error {
	if !s.Reserved {
		return ErrNotReserved
	}
	s.Reserved = false
	s.Version++
	return nil
}

// Eligible reports whether the slot can be offered as the next available
// slot at the given time.
func (s *Slot) Eligible(now time.Time) bool {
	return !s.Reserved && !s.StartTime.Before(now)
}
