package response

import (
	"time"

	"slot-reservation/internal/usecase"

	"github.com/google/uuid"
)

// ReserveResponse answers both paths in one shape: the queued path carries
// only request_id and status, the direct path also carries the committed
// reservation.
type ReserveResponse struct {
	RequestID   string           `json:"request_id"`
	Status      string           `json:"status"`
	Reservation *ReservationBody `json:"reservation,omitempty"`
}

type ReservationBody struct {
	ID         uuid.UUID `json:"id"`
	UserEmail  string    `json:"user_email"`
	SlotID     uuid.UUID `json:"slot_id"`
	SlotStart  time.Time `json:"slot_start"`
	SlotEnd    time.Time `json:"slot_end"`
	ReservedAt time.Time `json:"reserved_at"`
}

type StatusResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

func FromReservationView(v *usecase.ReservationView) *ReserveResponse {
	return &ReserveResponse{
		// Synthetic id so direct-path callers can treat both paths alike.
		RequestID: "direct-" + v.ID.String(),
		Status:    string(usecase.StatusSuccess),
		Reservation: &ReservationBody{
			ID:         v.ID,
			UserEmail:  v.UserEmail,
			SlotID:     v.SlotID,
			SlotStart:  v.SlotStart,
			SlotEnd:    v.SlotEnd,
			ReservedAt: v.ReservedAt,
		},
	}
}
