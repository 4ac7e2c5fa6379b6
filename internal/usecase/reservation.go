package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/domain/user"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/pkg/clock"
	"slot-reservation/internal/pkg/errs"
	"slot-reservation/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
	crerrors "github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrUserNotFound               = errors.New("user not found")
	ErrDuplicateActiveReservation = errors.New("user already has an active reservation")
	ErrNoSlotAvailable            = errors.New("no available time slots")
	ErrCapacityExceeded           = errors.New("unable to reserve a slot due to high demand")
	ErrReservationNotFound        = errors.New("reservation not found")

	// ErrSlotRace means this attempt lost the race for one specific slot.
	// The whole claim is retried, not just the write.
	ErrSlotRace = errors.New("slot claimed by a concurrent request")
)

type SlotRepository interface {
	FindNextAvailable(ctx context.Context, now time.Time) (*slot.Slot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	// Claim sets reserved=true iff the stored version still matches;
	// a stale version yields KindConflict.
	Claim(ctx context.Context, id uuid.UUID, version int64) error
	Release(ctx context.Context, id uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsActiveByEmail(ctx context.Context, email string, after time.Time) (bool, error)
	FindReservedBefore(ctx context.Context, cutoff time.Time) ([]*reservation.Reservation, error)
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// NextSlotCache is the shared single-entry read-through cache over the
// earliest eligible slot. It is an optimization only: every claim
// re-validates against the store before writing.
type NextSlotCache interface {
	Get(ctx context.Context, now time.Time) (*slot.Slot, error)
	Evict()
}

type ReservationView struct {
	ID         uuid.UUID `json:"id"`
	UserEmail  string    `json:"user_email"`
	SlotID     uuid.UUID `json:"slot_id"`
	SlotStart  time.Time `json:"slot_start"`
	SlotEnd    time.Time `json:"slot_end"`
	ReservedAt time.Time `json:"reserved_at"`
}

type ReservationUseCase interface {
	Reserve(ctx context.Context, email string) (*ReservationView, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type reservationUseCaseImpl struct {
	slots        SlotRepository
	reservations ReservationRepository
	users        UserRepository
	cache        NextSlotCache
	clock        clock.Clock
	logger       *slog.Logger
	metrics      *metrics.Metrics

	maxAttempts    int
	initialBackoff time.Duration
}

func NewReservationUseCase(
	slots SlotRepository,
	reservations ReservationRepository,
	users UserRepository,
	cache NextSlotCache,
	clk clock.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
	maxAttempts int,
	initialBackoff time.Duration,
) ReservationUseCase {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &reservationUseCaseImpl{
		slots:          slots,
		reservations:   reservations,
		users:          users,
		cache:          cache,
		clock:          clk,
		logger:         logger,
		metrics:        m,
		maxAttempts:    maxAttempts,
		initialBackoff: initialBackoff,
	}
}

// Reserve claims the earliest unreserved future slot for the given email.
// Version conflicts are retried with exponential backoff up to the attempt
// ceiling, then escalated to ErrCapacityExceeded.
func (u *reservationUseCaseImpl) Reserve(ctx context.Context, email string) (*ReservationView, error) {
	u.logger.Info("attempting to reserve nearest slot", "email", email)

	usr, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			u.metrics.ReservationFailed.Inc()
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "user lookup failed")
	}

	// Checked against reservation storage, not the queue guard set, so the
	// direct path is covered too.
	hasActive, err := u.reservations.ExistsActiveByEmail(ctx, email, u.clock.Now())
	if err != nil {
		return nil, errs.Wrap(err, "active reservation check failed")
	}
	if hasActive {
		u.metrics.ReservationFailed.Inc()
		return nil, ErrDuplicateActiveReservation
	}

	var view *ReservationView
	operation := func() error {
		v, attemptErr := u.attemptClaim(ctx, usr)
		if attemptErr != nil {
			if crerrors.Is(attemptErr, ErrSlotRace) {
				return attemptErr
			}
			return backoff.Permanent(attemptErr)
		}
		view = v
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = u.initialBackoff
	bo.Multiplier = 2
	bo.MaxElapsedTime = 0

	err = backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(u.maxAttempts-1)), ctx))
	if err != nil {
		if crerrors.Is(err, ErrSlotRace) {
			u.logger.Error("failed to reserve slot after retries due to concurrent modifications",
				"email", email, "attempts", u.maxAttempts)
			u.metrics.LockConflicts.Inc()
			u.metrics.ReservationFailed.Inc()
			return nil, ErrCapacityExceeded
		}
		if errors.Is(err, ErrNoSlotAvailable) {
			u.metrics.ReservationFailed.Inc()
		}
		return nil, err
	}

	u.metrics.ReservationSuccess.Inc()
	return view, nil
}

// attemptClaim performs one claim cycle: cached lookup, fresh re-read,
// versioned write, reservation record.
func (u *reservationUseCaseImpl) attemptClaim(ctx context.Context, usr *user.User) (*ReservationView, error) {
	now := u.clock.Now()

	next, err := u.cache.Get(ctx, now)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrNoSlotAvailable
		}
		return nil, errs.Wrap(err, "next slot lookup failed")
	}

	// The cached pointer may be stale; the store is the source of truth.
	fresh, err := u.slots.FindByID(ctx, next.ID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			u.cache.Evict()
			return nil, errs.Mark(err, ErrSlotRace)
		}
		return nil, errs.Wrap(err, "slot re-read failed")
	}
	if fresh.Reserved {
		u.logger.Warn("slot already reserved in store", "slot_id", fresh.ID)
		u.cache.Evict()
		return nil, ErrSlotRace
	}

	if err := u.slots.Claim(ctx, fresh.ID, fresh.Version); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			u.cache.Evict()
			return nil, errs.Mark(err, ErrSlotRace)
		}
		return nil, errs.Wrap(err, "slot claim failed")
	}

	res, err := reservation.New(usr.ID, usr.Email, fresh.ID, now)
	if err != nil {
		u.releaseClaimed(ctx, fresh.ID)
		return nil, errs.Wrap(err, "building reservation failed")
	}
	if err := u.reservations.Create(ctx, res); err != nil {
		// Leave no claimed slot without a reservation record.
		u.releaseClaimed(ctx, fresh.ID)
		return nil, errs.Wrap(err, "persisting reservation failed")
	}

	u.cache.Evict()
	u.logger.Info("reservation created", "reservation_id", res.ID, "email", usr.Email, "slot_id", fresh.ID)

	return &ReservationView{
		ID:         res.ID,
		UserEmail:  res.UserEmail,
		SlotID:     fresh.ID,
		SlotStart:  fresh.StartTime,
		SlotEnd:    fresh.EndTime,
		ReservedAt: res.ReservedAt,
	}, nil
}

func (u *reservationUseCaseImpl) releaseClaimed(ctx context.Context, slotID uuid.UUID) {
	if err := u.slots.Release(ctx, slotID); err != nil {
		u.logger.Error("failed to release slot after aborted claim", "slot_id", slotID, "error", err)
	}
}

// Cancel deletes a committed reservation and frees its slot unconditionally.
func (u *reservationUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	res, err := u.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrReservationNotFound
		}
		return errs.Wrap(err, "reservation lookup failed")
	}

	if err := u.slots.Release(ctx, res.SlotID); err != nil {
		return errs.Wrap(err, "slot release failed")
	}
	if err := u.reservations.Delete(ctx, res.ID); err != nil {
		return errs.Wrap(err, "reservation delete failed")
	}

	u.metrics.ReservationCancelled.Inc()
	u.cache.Evict()
	u.logger.Info("reservation cancelled", "reservation_id", id, "slot_id", res.SlotID)
	return nil
}
