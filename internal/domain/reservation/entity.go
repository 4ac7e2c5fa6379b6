package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMissingSlot = errors.New("reservation requires a claimed slot")

// Reservation binds one requester to one claimed slot. Exactly one live
// Reservation exists per live claimed Slot; the binding is broken only by
// cancellation or by the expiry reaper.
type Reservation struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	UserEmail  string
	SlotID     uuid.UUID
	ReservedAt time.Time
}

func New(userID uuid.UUID, email string, slotID uuid.UUID, reservedAt time.Time) (*Reservation, error) {
	if slotID == uuid.Nil {
		return nil, ErrMissingSlot
	}
	return &Reservation{
		ID:         uuid.New(),
		UserID:     userID,
		UserEmail:  email,
		SlotID:     slotID,
		ReservedAt: reservedAt,
	}, nil
}

// ExpiredAt reports whether the reservation is older than the given age.
func (r *Reservation) ExpiredAt(now time.Time, age time.Duration) bool {
	return r.ReservedAt.Before(now.Add(-age))
}
