package request

// ReserveRequest asks for the nearest available slot for one requester.
type ReserveRequest struct {
	Email string `json:"email" binding:"required,email"`
}
