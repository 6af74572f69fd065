package waitlist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"squeedr/internal/domain/accesscontrol"
)

var referenceTime = time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)

// fakeClock drives expiry without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{cur: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.cur = c.cur.Add(d)
	c.mu.Unlock()
}

// memoryStore implements Store in memory with the same compare-and-set
// semantics as the SQL repository.
type memoryStore struct {
	mu       sync.Mutex
	requests map[string]*Request
}

func newMemoryStore() *memoryStore {
	return &memoryStore{requests: make(map[string]*Request)}
}

func (s *memoryStore) Create(_ context.Context, req *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *req
	s.requests[req.ID] = &cp
	return nil
}

func (s *memoryStore) GetByID(_ context.Context, id string) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (s *memoryStore) ListByUser(_ context.Context, userID int64) ([]Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, req := range s.requests {
		if req.UserID == userID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (s *memoryStore) ListByWorkspace(_ context.Context, workspaceID int64, status *Status) ([]Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, req := range s.requests {
		if req.WorkspaceID != workspaceID {
			continue
		}
		if status != nil && req.Status != *status {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (s *memoryStore) TransitionStatus(_ context.Context, id string, from, to Status, notifiedAt, expiresAt *time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}
	req.Status = to
	if notifiedAt != nil {
		t := *notifiedAt
		req.NotifiedAt = &t
	}
	if expiresAt != nil {
		t := *expiresAt
		req.ExpiresAt = &t
	}
	return true, nil
}

func (s *memoryStore) OfferIfSlotFree(_ context.Context, id string, slot Slot, notifiedAt, expiresAt, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, req := range s.requests {
		if req.ID != id && req.Slot() == slot && req.Status == StatusNotified && req.ExpiresAt != nil && req.ExpiresAt.After(now) {
			return false, ErrSlotAlreadyOffered
		}
	}
	req, ok := s.requests[id]
	if !ok || req.Status != StatusPending {
		return false, nil
	}
	req.Status = StatusNotified
	na, ea := notifiedAt, expiresAt
	req.NotifiedAt = &na
	req.ExpiresAt = &ea
	return true, nil
}

func (s *memoryStore) NextPending(_ context.Context, slot Slot) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var candidates []*Request
	for _, req := range s.requests {
		if req.Slot() == slot && req.Status == StatusPending {
			candidates = append(candidates, req)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := candidates[i].Priority, candidates[j].Priority
		switch {
		case pi != nil && pj != nil && *pi != *pj:
			return *pi < *pj
		case pi != nil && pj == nil:
			return true
		case pi == nil && pj != nil:
			return false
		}
		return candidates[i].RequestedAt.Before(candidates[j].RequestedAt)
	})
	cp := *candidates[0]
	return &cp, nil
}

func (s *memoryStore) DueOffers(_ context.Context, now time.Time) ([]Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, req := range s.requests {
		if req.Status == StatusNotified && req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (s *memoryStore) LapsedPending(_ context.Context, now time.Time) ([]Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Request
	for _, req := range s.requests {
		if req.Status == StatusPending && req.End.Before(now) {
			out = append(out, *req)
		}
	}
	return out, nil
}

type bookerStub struct {
	calls int
	err   error
}

func (b *bookerStub) CreateFromWaitlist(_ context.Context, _ *Request) (int64, error) {
	b.calls++
	if b.err != nil {
		return 0, b.err
	}
	return int64(1000 + b.calls), nil
}

type notifierStub struct {
	offered []string
	expired []string
	err     error
}

func (n *notifierStub) OfferCreated(_ context.Context, req *Request) error {
	n.offered = append(n.offered, req.ID)
	return n.err
}

func (n *notifierStub) OfferExpired(_ context.Context, req *Request) error {
	n.expired = append(n.expired, req.ID)
	return n.err
}

type fixture struct {
	store    *memoryStore
	booker   *bookerStub
	notifier *notifierStub
	clock    *fakeClock
	manager  *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    newMemoryStore(),
		booker:   &bookerStub{},
		notifier: &notifierStub{},
		clock:    newFakeClock(referenceTime),
	}
	f.manager = NewManager(f.store, f.booker, f.notifier, nil, DefaultOfferWindow, f.clock.Now)
	return f
}

func (f *fixture) createRequest(t *testing.T, priority *int) *Request {
	t.Helper()
	req, err := f.manager.Create(context.Background(), CreateInput{
		Reference:     "SQ-TEST",
		UserID:        42,
		UserName:      "Dana Client",
		UserEmail:     "dana@example.com",
		UserRole:      accesscontrol.RoleClient,
		WorkspaceID:   1,
		WorkspaceName: "ws1",
		Start:         time.Date(2024, time.January, 10, 10, 0, 0, 0, time.UTC),
		End:           time.Date(2024, time.January, 10, 11, 0, 0, 0, time.UTC),
		Purpose:       "team sync",
		Attendees:     4,
		Priority:      priority,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return req
}

func intPtr(v int) *int { return &v }

func TestCreateStartsPending(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t, nil)

	if req.Status != StatusPending {
		t.Errorf("new request status = %q, want %q", req.Status, StatusPending)
	}
	if !req.RequestedAt.Equal(referenceTime) {
		t.Errorf("RequestedAt = %s, want clock time %s", req.RequestedAt, referenceTime)
	}
	if req.NotifiedAt != nil || req.ExpiresAt != nil {
		t.Error("pending request must not carry notifiedAt/expiresAt")
	}
	if req.ID == "" {
		t.Error("request has no id")
	}
}

func TestCreateRejectsInvertedWindow(t *testing.T) {
	f := newFixture(t)
	_, err := f.manager.Create(context.Background(), CreateInput{
		WorkspaceID: 1,
		Start:       referenceTime.Add(2 * time.Hour),
		End:         referenceTime.Add(time.Hour),
	})
	if err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestOfferSetsWindow(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t, nil)

	offered, err := f.manager.Offer(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("Offer returned error: %v", err)
	}
	if offered.Status != StatusNotified {
		t.Errorf("status = %q, want %q", offered.Status, StatusNotified)
	}
	if offered.NotifiedAt == nil || offered.ExpiresAt == nil {
		t.Fatal("notified request must carry notifiedAt and expiresAt")
	}
	if !offered.ExpiresAt.After(*offered.NotifiedAt) {
		t.Errorf("expiresAt %s is not strictly after notifiedAt %s", offered.ExpiresAt, offered.NotifiedAt)
	}
	if got := offered.ExpiresAt.Sub(*offered.NotifiedAt); got != DefaultOfferWindow {
		t.Errorf("offer window = %s, want %s", got, DefaultOfferWindow)
	}
	if len(f.notifier.offered) != 1 {
		t.Errorf("notifier called %d times, want 1", len(f.notifier.offered))
	}
}

func TestOfferNotificationFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("push gateway down")
	req := f.createRequest(t, nil)

	offered, err := f.manager.Offer(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("Offer must succeed despite notification failure, got %v", err)
	}
	if offered.Status != StatusNotified {
		t.Errorf("status = %q, want %q", offered.Status, StatusNotified)
	}
}

func TestOfferRejectsSecondOfferForSlot(t *testing.T) {
	f := newFixture(t)
	r1 := f.createRequest(t, nil)
	r2 := f.createRequest(t, nil)

	if _, err := f.manager.Offer(context.Background(), r1.ID); err != nil {
		t.Fatal(err)
	}
	_, err := f.manager.Offer(context.Background(), r2.ID)
	if !errors.Is(err, ErrSlotAlreadyOffered) {
		t.Fatalf("expected ErrSlotAlreadyOffered, got %v", err)
	}
}

func TestOfferConcurrentForSameSlotGrantsOnlyOne(t *testing.T) {
	f := newFixture(t)
	r1 := f.createRequest(t, nil)
	r2 := f.createRequest(t, nil)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []string{r1.ID, r2.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.manager.Offer(context.Background(), id)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)

	var granted, rejected int
	for err := range errs {
		switch {
		case err == nil:
			granted++
		case errors.Is(err, ErrSlotAlreadyOffered):
			rejected++
		default:
			t.Fatalf("unexpected offer error: %v", err)
		}
	}
	if granted != 1 || rejected != 1 {
		t.Fatalf("granted=%d rejected=%d, want exactly one of each", granted, rejected)
	}

	var notified int
	for _, id := range []string{r1.ID, r2.ID} {
		cur, err := f.store.GetByID(context.Background(), id)
		if err != nil {
			t.Fatal(err)
		}
		if cur.Status == StatusNotified {
			notified++
		}
	}
	if notified != 1 {
		t.Fatalf("%d requests hold an offer for the slot, want exactly 1", notified)
	}
}

func TestClaimBeforeExpiryCreatesBookingOnce(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t, nil)
	if _, err := f.manager.Offer(context.Background(), req.ID); err != nil {
		t.Fatal(err)
	}

	f.clock.Advance(30 * time.Minute)

	claimed, bookingID, err := f.manager.Claim(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("Claim returned error: %v", err)
	}
	if claimed.Status != StatusFulfilled {
		t.Errorf("status = %q, want %q", claimed.Status, StatusFulfilled)
	}
	if bookingID == 0 {
		t.Error("claim did not return a booking id")
	}
	if f.booker.calls != 1 {
		t.Errorf("booker called %d times, want exactly 1", f.booker.calls)
	}
	if claimed.NotifiedAt == nil || claimed.ExpiresAt == nil {
		t.Error("fulfilled request must keep its offer timestamps as history")
	}
}

func TestClaimNeverNotifiedRequest(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t, nil)

	_, _, err := f.manager.Claim(context.Background(), req.ID)
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if ite.Status != StatusPending || ite.Event != EventClaim {
		t.Errorf("error carries status=%q event=%q, want pending/claim", ite.Status, ite.Event)
	}
	if f.booker.calls != 0 {
		t.Error("booker must not be called for an invalid claim")
	}
}

func TestClaimAfterDeadlineIsStaleWithoutSweep(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t, nil)
	if _, err := f.manager.Offer(context.Background(), req.ID); err != nil {
		t.Fatal(err)
	}

	// One second past the window; no sweep has run.
	f.clock.Advance(DefaultOfferWindow + time.Second)

	_, _, err := f.manager.Claim(context.Background(), req.ID)
	if !errors.Is(err, ErrStaleOffer) {
		t.Fatalf("expected ErrStaleOffer, got %v", err)
	}
	if f.booker.calls != 0 {
		t.Error("stale claim must not create a booking")
	}

	// The lazy expiry settled the request.
	cur, err := f.store.GetByID(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cur.Status != StatusExpired {
		t.Errorf("status after stale claim = %q, want %q", cur.Status, StatusExpired)
	}
}

func TestClaimAndDeclineAfterSweepAreStale(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t, nil)
	if _, err := f.manager.Offer(context.Background(), req.ID); err != nil {
		t.Fatal(err)
	}

	f.clock.Advance(DefaultOfferWindow + time.Minute)
	if _, err := f.manager.ExpireDue(context.Background()); err != nil {
		t.Fatal(err)
	}

	_, _, err := f.manager.Claim(context.Background(), req.ID)
	if !errors.Is(err, ErrStaleOffer) {
		t.Fatalf("claim after sweep: expected ErrStaleOffer, got %v", err)
	}
	if f.booker.calls != 0 {
		t.Error("stale claim must not create a booking")
	}

	_, err = f.manager.Decline(context.Background(), req.ID)
	if !errors.Is(err, ErrStaleOffer) {
		t.Fatalf("decline after sweep: expected ErrStaleOffer, got %v", err)
	}
}

func TestClaimRollsBackWhenBookingFails(t *testing.T) {
	f := newFixture(t)
	f.booker.err = errors.New("bookings table unavailable")
	req := f.createRequest(t, nil)
	if _, err := f.manager.Offer(context.Background(), req.ID); err != nil {
		t.Fatal(err)
	}

	_, _, err := f.manager.Claim(context.Background(), req.ID)
	if err == nil {
		t.Fatal("expected claim to surface the booking error")
	}

	cur, err := f.store.GetByID(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cur.Status != StatusNotified {
		t.Errorf("status after failed booking = %q, want offer restored to %q", cur.Status, StatusNotified)
	}
}

func TestDeclinePromotesNextCandidate(t *testing.T) {
	f := newFixture(t)
	first := f.createRequest(t, intPtr(1))
	second := f.createRequest(t, intPtr(2))

	if _, err := f.manager.Offer(context.Background(), first.ID); err != nil {
		t.Fatal(err)
	}
	declined, err := f.manager.Decline(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("Decline returned error: %v", err)
	}
	if declined.Status != StatusCancelled {
		t.Errorf("declined status = %q, want %q", declined.Status, StatusCancelled)
	}

	promoted, err := f.store.GetByID(context.Background(), second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if promoted.Status != StatusNotified {
		t.Errorf("next candidate status = %q, want %q", promoted.Status, StatusNotified)
	}
}

func TestDeclineCancelledRequestIsRejected(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t, nil)
	if _, err := f.manager.Cancel(context.Background(), req.ID); err != nil {
		t.Fatal(err)
	}

	_, err := f.manager.Decline(context.Background(), req.ID)
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("declining a cancelled request must fail loudly, got %v", err)
	}
	if ite.Status != StatusCancelled {
		t.Errorf("error status = %q, want %q", ite.Status, StatusCancelled)
	}
}

func TestCancelPendingDoesNotPromote(t *testing.T) {
	f := newFixture(t)
	first := f.createRequest(t, intPtr(1))
	second := f.createRequest(t, intPtr(2))

	cancelled, err := f.manager.Cancel(context.Background(), first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status = %q, want %q", cancelled.Status, StatusCancelled)
	}

	other, err := f.store.GetByID(context.Background(), second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if other.Status != StatusPending {
		t.Errorf("no slot was held, but second request became %q", other.Status)
	}
}

func TestCancelNotifiedPromotes(t *testing.T) {
	f := newFixture(t)
	first := f.createRequest(t, intPtr(1))
	second := f.createRequest(t, intPtr(2))

	if _, err := f.manager.Offer(context.Background(), first.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.manager.Cancel(context.Background(), first.ID); err != nil {
		t.Fatal(err)
	}

	promoted, err := f.store.GetByID(context.Background(), second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if promoted.Status != StatusNotified {
		t.Errorf("held slot was released, want second request notified, got %q", promoted.Status)
	}
}

func TestPromotionOrdering(t *testing.T) {
	f := newFixture(t)

	// Priorities [3, 1, 2] with distinct request times.
	r3 := f.createRequest(t, intPtr(3))
	f.clock.Advance(time.Minute)
	r1 := f.createRequest(t, intPtr(1))
	f.clock.Advance(time.Minute)
	r2 := f.createRequest(t, intPtr(2))

	if _, err := f.manager.Offer(context.Background(), r1.ID); err != nil {
		t.Fatalf("priority-1 request should be offerable first: %v", err)
	}
	if _, err := f.manager.Decline(context.Background(), r1.ID); err != nil {
		t.Fatal(err)
	}

	cur, err := f.store.GetByID(context.Background(), r2.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cur.Status != StatusNotified {
		t.Errorf("priority-2 request status = %q, want %q after priority-1 released", cur.Status, StatusNotified)
	}
	cur, err = f.store.GetByID(context.Background(), r3.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cur.Status != StatusPending {
		t.Errorf("priority-3 request must still wait, got %q", cur.Status)
	}
}

func TestPromotionTreatsNilPriorityAsLowest(t *testing.T) {
	f := newFixture(t)
	noPriority := f.createRequest(t, nil)
	f.clock.Advance(time.Minute)
	withPriority := f.createRequest(t, intPtr(9))

	next, err := f.store.NextPending(context.Background(), noPriority.Slot())
	if err != nil {
		t.Fatal(err)
	}
	if next.ID != withPriority.ID {
		t.Error("a set priority must outrank nil priority even when requested later")
	}
}

func TestPromotionFIFOTieBreak(t *testing.T) {
	f := newFixture(t)
	earlier := f.createRequest(t, intPtr(5))
	f.clock.Advance(time.Minute)
	later := f.createRequest(t, intPtr(5))

	next, err := f.store.NextPending(context.Background(), earlier.Slot())
	if err != nil {
		t.Fatal(err)
	}
	if next.ID != earlier.ID {
		t.Errorf("equal priorities must break ties FIFO, got %s want %s", next.ID, later.ID)
	}
}

func TestExpireDueSweepsAndPromotes(t *testing.T) {
	f := newFixture(t)
	first := f.createRequest(t, intPtr(1))
	second := f.createRequest(t, intPtr(2))

	if _, err := f.manager.Offer(context.Background(), first.ID); err != nil {
		t.Fatal(err)
	}
	firstExpiry := f.clock.Now().Add(DefaultOfferWindow)

	f.clock.Advance(DefaultOfferWindow + time.Minute)

	n, err := f.manager.ExpireDue(context.Background())
	if err != nil {
		t.Fatalf("ExpireDue returned error: %v", err)
	}
	if n != 1 {
		t.Errorf("ExpireDue expired %d requests, want 1", n)
	}

	expired, err := f.store.GetByID(context.Background(), first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if expired.Status != StatusExpired {
		t.Errorf("first request status = %q, want %q", expired.Status, StatusExpired)
	}

	promoted, err := f.store.GetByID(context.Background(), second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if promoted.Status != StatusNotified {
		t.Fatalf("second request status = %q, want %q", promoted.Status, StatusNotified)
	}
	if promoted.ExpiresAt == nil || !promoted.ExpiresAt.After(firstExpiry) {
		t.Error("promoted request must get a fresh claim window, not inherit the old one")
	}
	if len(f.notifier.expired) != 1 {
		t.Errorf("expiry notifications = %d, want 1", len(f.notifier.expired))
	}
}

func TestExpireDueLapsesPendingPastSlot(t *testing.T) {
	f := newFixture(t)
	req := f.createRequest(t, nil)

	// Jump past the slot itself (ends 11:00 on the reference day).
	f.clock.Advance(6 * time.Hour)

	n, err := f.manager.ExpireDue(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("ExpireDue expired %d requests, want 1", n)
	}

	cur, err := f.store.GetByID(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if cur.Status != StatusExpired {
		t.Errorf("pending request past its slot = %q, want %q", cur.Status, StatusExpired)
	}
}

func TestEndToEndClaimScenario(t *testing.T) {
	f := newFixture(t)

	req, err := f.manager.Create(context.Background(), CreateInput{
		Reference:     "SQ-E2E",
		UserID:        7,
		UserName:      "Alex Expert",
		UserEmail:     "alex@example.com",
		UserRole:      accesscontrol.RoleExpert,
		WorkspaceID:   1,
		WorkspaceName: "ws1",
		Start:         time.Date(2024, time.January, 10, 10, 0, 0, 0, time.UTC),
		End:           time.Date(2024, time.January, 10, 11, 0, 0, 0, time.UTC),
		Purpose:       "client onboarding",
		Attendees:     2,
	})
	if err != nil {
		t.Fatal(err)
	}

	offered, err := f.manager.Offer(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	wantExpiry := f.clock.Now().Add(DefaultOfferWindow)
	if !offered.ExpiresAt.Equal(wantExpiry) {
		t.Errorf("expiresAt = %s, want %s", offered.ExpiresAt, wantExpiry)
	}

	f.clock.Advance(time.Hour)

	claimed, bookingID, err := f.manager.Claim(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if claimed.Status != StatusFulfilled {
		t.Errorf("status = %q, want %q", claimed.Status, StatusFulfilled)
	}
	if bookingID == 0 || f.booker.calls != 1 {
		t.Errorf("want exactly one booking, got calls=%d id=%d", f.booker.calls, bookingID)
	}
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from  Status
		event Event
		want  Status
		ok    bool
	}{
		{StatusPending, EventOffer, StatusNotified, true},
		{StatusPending, EventCancel, StatusCancelled, true},
		{StatusPending, EventExpire, StatusExpired, true},
		{StatusPending, EventClaim, "", false},
		{StatusPending, EventDecline, "", false},
		{StatusNotified, EventClaim, StatusFulfilled, true},
		{StatusNotified, EventDecline, StatusCancelled, true},
		{StatusNotified, EventCancel, StatusCancelled, true},
		{StatusNotified, EventExpire, StatusExpired, true},
		{StatusNotified, EventOffer, "", false},
		{StatusFulfilled, EventClaim, "", false},
		{StatusFulfilled, EventCancel, "", false},
		{StatusExpired, EventClaim, "", false},
		{StatusExpired, EventOffer, "", false},
		{StatusCancelled, EventDecline, "", false},
		{StatusCancelled, EventCancel, "", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.from, tt.event), func(t *testing.T) {
			got, err := nextStatus(tt.from, tt.event)
			if tt.ok {
				if err != nil {
					t.Fatalf("expected transition, got error %v", err)
				}
				if got != tt.want {
					t.Errorf("nextStatus = %q, want %q", got, tt.want)
				}
				return
			}
			var ite *InvalidTransitionError
			if !errors.As(err, &ite) {
				t.Fatalf("expected InvalidTransitionError, got %v", err)
			}
		})
	}
}
