//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"slot-reservation/internal/infra"
	"slot-reservation/internal/infra/cache"
	"slot-reservation/internal/pkg/clock"
	"slot-reservation/internal/pkg/metrics"
	"slot-reservation/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var testBase = time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

// racySlotStore injects version conflicts into the first N claim attempts.
type racySlotStore struct {
	*fakeSlotStore
	failClaims int32
}

func (r *racySlotStore) Claim(ctx context.Context, id uuid.UUID, version int64) error {
	if atomic.AddInt32(&r.failClaims, -1) >= 0 {
		return infra.WrapRepoErr("slot version conflict", nil, infra.KindConflict)
	}
	return r.fakeSlotStore.Claim(ctx, id, version)
}

type ReservationUseCaseTestSuite struct {
	suite.Suite
	slots        *fakeSlotStore
	reservations *fakeReservationStore
	users        *fakeUserStore
	clock        *clock.MockClock
	uc           usecase.ReservationUseCase
}

func (s *ReservationUseCaseTestSuite) SetupTest() {
	s.slots = newFakeSlotStore()
	s.reservations = newFakeReservationStore(s.slots)
	s.users = newFakeUserStore()
	s.clock = clock.NewMockClock(testBase)
	s.uc = s.newUseCase(s.slots, 3)
}

func (s *ReservationUseCaseTestSuite) newUseCase(repo usecase.SlotRepository, maxAttempts int) usecase.ReservationUseCase {
	return usecase.NewReservationUseCase(
		repo, s.reservations, s.users, cache.New(repo),
		s.clock, testLogger(), metrics.New(),
		maxAttempts, time.Millisecond,
	)
}

func (s *ReservationUseCaseTestSuite) addFutureSlot(offset time.Duration) uuid.UUID {
	start := testBase.Add(offset)
	return s.slots.add(start, start.Add(time.Hour))
}

func (s *ReservationUseCaseTestSuite) TestReserveClaimsEarliestSlot() {
	s.users.add("alice@example.com")
	s.addFutureSlot(3 * time.Hour)
	earliest := s.addFutureSlot(1 * time.Hour)

	view, err := s.uc.Reserve(context.Background(), "alice@example.com")

	s.Require().NoError(err)
	s.Equal(earliest, view.SlotID)
	s.Equal("alice@example.com", view.UserEmail)
	s.Equal(testBase, view.ReservedAt)
	s.True(s.slots.get(earliest).Reserved)
	s.Equal(int64(1), s.slots.get(earliest).Version)
	s.Equal(1, s.reservations.count())
}

func (s *ReservationUseCaseTestSuite) TestReserveUnknownUser() {
	s.addFutureSlot(time.Hour)

	_, err := s.uc.Reserve(context.Background(), "nobody@example.com")

	s.Require().ErrorIs(err, usecase.ErrUserNotFound)
	s.Equal(0, s.slots.reservedCount())
}

func (s *ReservationUseCaseTestSuite) TestReserveNoEligibleSlot() {
	s.users.add("alice@example.com")

	_, err := s.uc.Reserve(context.Background(), "alice@example.com")
	s.Require().ErrorIs(err, usecase.ErrNoSlotAvailable)

	// Slots that already started are not eligible either.
	s.slots.add(testBase.Add(-2*time.Hour), testBase.Add(-time.Hour))
	_, err = s.uc.Reserve(context.Background(), "alice@example.com")
	s.Require().ErrorIs(err, usecase.ErrNoSlotAvailable)
}

func (s *ReservationUseCaseTestSuite) TestReserveRejectsSecondActiveReservation() {
	s.users.add("alice@example.com")
	s.addFutureSlot(time.Hour)
	s.addFutureSlot(2 * time.Hour)

	_, err := s.uc.Reserve(context.Background(), "alice@example.com")
	s.Require().NoError(err)

	_, err = s.uc.Reserve(context.Background(), "alice@example.com")
	s.Require().ErrorIs(err, usecase.ErrDuplicateActiveReservation)

	// The rejected call must leave the pool untouched.
	s.Equal(1, s.slots.reservedCount())
	s.Equal(1, s.reservations.count())
}

func (s *ReservationUseCaseTestSuite) TestReserveRetriesAfterVersionConflict() {
	s.users.add("alice@example.com")
	racy := &racySlotStore{fakeSlotStore: s.slots, failClaims: 2}
	uc := s.newUseCase(racy, 3)
	id := s.addFutureSlot(time.Hour)

	view, err := uc.Reserve(context.Background(), "alice@example.com")

	s.Require().NoError(err)
	s.Equal(id, view.SlotID)
	s.True(s.slots.get(id).Reserved)
}

func (s *ReservationUseCaseTestSuite) TestReserveGivesUpAfterRetryBudget() {
	s.users.add("alice@example.com")
	racy := &racySlotStore{fakeSlotStore: s.slots, failClaims: 3}
	uc := s.newUseCase(racy, 3)
	id := s.addFutureSlot(time.Hour)

	_, err := uc.Reserve(context.Background(), "alice@example.com")

	s.Require().ErrorIs(err, usecase.ErrCapacityExceeded)
	s.False(s.slots.get(id).Reserved)
	s.Equal(0, s.reservations.count())
}

func (s *ReservationUseCaseTestSuite) TestReserveReleasesSlotWhenPersistFails() {
	s.users.add("alice@example.com")
	id := s.addFutureSlot(time.Hour)
	s.reservations.createErr = errors.New("connection reset")

	_, err := s.uc.Reserve(context.Background(), "alice@example.com")

	s.Require().Error(err)
	s.False(s.slots.get(id).Reserved)
	s.Equal(0, s.reservations.count())
}

func (s *ReservationUseCaseTestSuite) TestConcurrentReservesNeverOverbook() {
	const slotCount = 5
	const callers = 20
	for i := 0; i < slotCount; i++ {
		s.addFutureSlot(time.Duration(i+1) * time.Hour)
	}
	emails := make([]string, callers)
	for i := range emails {
		emails[i] = fmt.Sprintf("user%d@example.com", i)
		s.users.add(emails[i])
	}

	var wg sync.WaitGroup
	results := make(chan error, callers)
	for _, email := range emails {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			_, err := s.uc.Reserve(context.Background(), email)
			results <- err
		}(email)
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, usecase.ErrNoSlotAvailable), errors.Is(err, usecase.ErrCapacityExceeded):
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}

	s.Equal(slotCount, successes)
	s.Equal(slotCount, s.slots.reservedCount())
	s.Equal(slotCount, s.reservations.count())
}

func (s *ReservationUseCaseTestSuite) TestTwoCallersOneSlot() {
	s.users.add("alice@example.com")
	s.users.add("bob@example.com")
	s.addFutureSlot(time.Hour)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, email := range []string{"alice@example.com", "bob@example.com"} {
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			_, errs[i] = s.uc.Reserve(context.Background(), email)
		}(i, email)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		}
	}
	s.Equal(1, winners)
	s.Equal(1, s.slots.reservedCount())
}

func (s *ReservationUseCaseTestSuite) TestCancelFreesSlotForReuse() {
	s.users.add("alice@example.com")
	s.users.add("bob@example.com")
	id := s.addFutureSlot(time.Hour)

	view, err := s.uc.Reserve(context.Background(), "alice@example.com")
	s.Require().NoError(err)

	s.Require().NoError(s.uc.Cancel(context.Background(), view.ID))
	s.False(s.slots.get(id).Reserved)
	s.Equal(0, s.reservations.count())

	// The freed slot is immediately reservable again.
	view, err = s.uc.Reserve(context.Background(), "bob@example.com")
	s.Require().NoError(err)
	s.Equal(id, view.SlotID)
}

func (s *ReservationUseCaseTestSuite) TestCancelUnknownReservation() {
	err := s.uc.Cancel(context.Background(), uuid.New())
	s.Require().ErrorIs(err, usecase.ErrReservationNotFound)
}

func TestReservationUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationUseCaseTestSuite))
}
