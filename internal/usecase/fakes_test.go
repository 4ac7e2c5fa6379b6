//go:build unit

package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/slot"
	"slot-reservation/internal/domain/user"
	"slot-reservation/internal/infra"
	"slot-reservation/internal/usecase"

	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSlotStore mimics the versioned slot table: Claim commits only when
// the caller's version still matches the stored one.
type fakeSlotStore struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*slot.Slot

	claimErr error
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{slots: make(map[uuid.UUID]*slot.Slot)}
}

func (f *fakeSlotStore) add(start, end time.Time) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.slots[id] = &slot.Slot{ID: id, StartTime: start, EndTime: end}
	return id
}

func (f *fakeSlotStore) get(id uuid.UUID) slot.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.slots[id]
}

func (f *fakeSlotStore) reservedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.slots {
		if s.Reserved {
			n++
		}
	}
	return n
}

func (f *fakeSlotStore) FindNextAvailable(_ context.Context, now time.Time) (*slot.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var candidates []*slot.Slot
	for _, s := range f.slots {
		if s.Eligible(now) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, infra.WrapRepoErr("no available slot", nil, infra.KindNotFound)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].StartTime.Before(candidates[j].StartTime)
	})
	cp := *candidates[0]
	return &cp, nil
}

func (f *fakeSlotStore) FindByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSlotStore) Claim(_ context.Context, id uuid.UUID, version int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return f.claimErr
	}
	s, ok := f.slots[id]
	if !ok {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	if s.Reserved || s.Version != version {
		return infra.WrapRepoErr("slot version conflict", nil, infra.KindConflict)
	}
	s.Reserved = true
	s.Version++
	return nil
}

func (f *fakeSlotStore) Release(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	s.Reserved = false
	s.Version++
	return nil
}

type fakeReservationStore struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]*reservation.Reservation
	slots        *fakeSlotStore

	createErr error
}

func newFakeReservationStore(slots *fakeSlotStore) *fakeReservationStore {
	return &fakeReservationStore{
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		slots:        slots,
	}
}

func (f *fakeReservationStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reservations)
}

func (f *fakeReservationStore) Create(_ context.Context, res *reservation.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeReservationStore) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	cp := *res
	return &cp, nil
}

func (f *fakeReservationStore) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reservations[id]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	delete(f.reservations, id)
	return nil
}

func (f *fakeReservationStore) ExistsActiveByEmail(_ context.Context, email string, after time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, res := range f.reservations {
		if res.UserEmail != email {
			continue
		}
		s := f.slots.get(res.SlotID)
		if s.StartTime.After(after) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservationStore) FindReservedBefore(_ context.Context, cutoff time.Time) ([]*reservation.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*reservation.Reservation
	for _, res := range f.reservations {
		if res.ReservedAt.Before(cutoff) {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*user.User)}
}

func (f *fakeUserStore) add(email string) *user.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &user.User{ID: uuid.New(), Email: email, CreatedAt: time.Now()}
	f.users[email] = u
	return u
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	cp := *u
	return &cp, nil
}

// fakeFIFO is an in-memory stand-in for the Redis list.
type fakeFIFO struct {
	mu    sync.Mutex
	items [][]byte

	pushErr error
}

func newFakeFIFO() *fakeFIFO {
	return &fakeFIFO{}
}

func (f *fakeFIFO) PushTail(_ context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	f.items = append(f.items, cp)
	return nil
}

func (f *fakeFIFO) PopHead(_ context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == 0 {
		return nil, nil
	}
	head := f.items[0]
	f.items = f.items[1:]
	return head, nil
}

func (f *fakeFIFO) Len(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

type fakeStatusStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeStatusStore() *fakeStatusStore {
	return &fakeStatusStore{values: make(map[string]string)}
}

func (f *fakeStatusStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

func (f *fakeStatusStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok, nil
}

type fakeGuardSet struct {
	mu      sync.Mutex
	members map[string]struct{}
}

func newFakeGuardSet() *fakeGuardSet {
	return &fakeGuardSet{members: make(map[string]struct{})}
}

func (f *fakeGuardSet) Add(_ context.Context, member string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members[member] = struct{}{}
	return nil
}

func (f *fakeGuardSet) Remove(_ context.Context, member string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, member)
	return nil
}

func (f *fakeGuardSet) Contains(_ context.Context, member string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.members[member]
	return ok, nil
}

func (f *fakeGuardSet) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.members)
}

// scriptedReserver lets queue tests dictate the outcome of each Reserve call
// without standing up the full allocation path.
type scriptedReserver struct {
	mu      sync.Mutex
	results map[string]error
	calls   map[string]int
}

func newScriptedReserver() *scriptedReserver {
	return &scriptedReserver{
		results: make(map[string]error),
		calls:   make(map[string]int),
	}
}

func (s *scriptedReserver) script(email string, result error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[email] = result
}

func (s *scriptedReserver) callCount(email string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[email]
}

func (s *scriptedReserver) Reserve(_ context.Context, email string) (*usecase.ReservationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[email]++
	if err := s.results[email]; err != nil {
		return nil, err
	}
	return &usecase.ReservationView{ID: uuid.New(), UserEmail: email}, nil
}

func (s *scriptedReserver) Cancel(_ context.Context, _ uuid.UUID) error {
	return nil
}
