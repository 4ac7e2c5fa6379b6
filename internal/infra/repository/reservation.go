package repository

import (
	"context"
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/infra"

	"github.com/google/uuid"
)

const (
	createReservationSQL = `
		INSERT INTO reservations (id, user_id, user_email, slot_id, reserved_at)
		VALUES ($1, $2, $3, $4, $5)`

	findReservationByIDSQL = `
		SELECT id, user_id, user_email, slot_id, reserved_at
		FROM reservations
		WHERE id = $1`

	deleteReservationSQL = `
		DELETE FROM reservations
		WHERE id = $1`

	existsActiveByEmailSQL = `
		SELECT EXISTS (
			SELECT 1
			FROM reservations r
			JOIN available_slots s ON s.id = r.slot_id
			WHERE r.user_email = $1 AND s.start_time > $2
		)`

	findReservedBeforeSQL = `
		SELECT id, user_id, user_email, slot_id, reserved_at
		FROM reservations
		WHERE reserved_at < $1`
)

type ReservationRepository struct {
	db DB
}

func NewReservationRepository(db DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, createReservationSQL,
		res.ID, res.UserID, res.UserEmail, res.SlotID, res.ReservedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("slot already has a live reservation", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var res reservation.Reservation
	err := r.db.QueryRow(ctx, findReservationByIDSQL, id).
		Scan(&res.ID, &res.UserID, &res.UserEmail, &res.SlotID, &res.ReservedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return &res, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteReservationSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) ExistsActiveByEmail(ctx context.Context, email string, after time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, existsActiveByEmailSQL, email, after).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check active reservation", err)
	}
	return exists, nil
}

func (r *ReservationRepository) FindReservedBefore(ctx context.Context, cutoff time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, findReservedBeforeSQL, cutoff)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find expired reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		var res reservation.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.UserEmail, &res.SlotID, &res.ReservedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired reservation", err)
		}
		result = append(result, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expired reservations", err)
	}
	return result, nil
}
