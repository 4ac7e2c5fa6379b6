package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the requester identity; reservations key off the email.
type User struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
}
