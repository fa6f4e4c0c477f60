package matchfeed

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"jobswipe/internal/domain/match"
	"jobswipe/internal/infrastructure/cache"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeLocks struct {
	mu   sync.Mutex
	keys map[string]bool
	err  error
}

func (f *fakeLocks) SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.keys == nil {
		f.keys = map[string]bool{}
	}
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

type fakeBus struct {
	mu        sync.Mutex
	published [][]byte
	err       error
}

func (f *fakeBus) Publish(ctx context.Context, channel string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if channel != EventsChannel {
		return errors.New("wrong channel")
	}
	f.published = append(f.published, payload)
	return nil
}

type fakeNotifier struct {
	mu  sync.Mutex
	got map[uuid.UUID]int
}

func (f *fakeNotifier) NotifyUser(userID uuid.UUID, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.got == nil {
		f.got = map[uuid.UUID]int{}
	}
	f.got[userID]++
}

func (f *fakeNotifier) count(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.got[id]
}

type fakeInvalidator struct {
	ids []uuid.UUID
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	f.ids = append(f.ids, userIDs...)
}

func newEvent() match.Event {
	return match.Event{MatchID: uuid.New(), SeekerID: uuid.New(), EmployerID: uuid.New(), CreatedAt: time.Now()}
}

func TestDispatcher_PublishesOnceAndInvalidatesBoth(t *testing.T) {
	bus := &fakeBus{}
	local := &fakeNotifier{}
	inv := &fakeInvalidator{}
	d := NewDispatcher(&fakeLocks{}, bus, local, inv, nil)
	ev := newEvent()

	for i := 0; i < 3; i++ {
		if _, err := d.Dispatch(context.Background(), ev); err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(bus.published))
	}
	if local.count(ev.SeekerID) != 0 {
		t.Fatalf("expected no local delivery when the bus works")
	}
	if len(inv.ids) != 2 || inv.ids[0] != ev.SeekerID || inv.ids[1] != ev.EmployerID {
		t.Fatalf("unexpected invalidations %v", inv.ids)
	}

	var msg Message
	if err := json.Unmarshal(bus.published[0], &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != EventTypeMatchCreated || msg.Match.MatchID != ev.MatchID {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestDispatcher_OtherInstanceClaimed(t *testing.T) {
	ev := newEvent()
	locks := &fakeLocks{keys: map[string]bool{notifiedKeyPrefix + ev.MatchID.String(): true}}
	bus := &fakeBus{}
	d := NewDispatcher(locks, bus, &fakeNotifier{}, nil, nil)

	announced, err := d.Dispatch(context.Background(), ev)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if announced || len(bus.published) != 0 {
		t.Fatalf("expected skip when the key is already held")
	}
}

func TestDispatcher_WithoutRedisDeliversLocallyOnce(t *testing.T) {
	locks := &fakeLocks{err: cache.ErrUnavailable}
	bus := &fakeBus{err: cache.ErrUnavailable}
	local := &fakeNotifier{}
	d := NewDispatcher(locks, bus, local, nil, nil)
	ev := newEvent()

	for i := 0; i < 2; i++ {
		if _, err := d.Dispatch(context.Background(), ev); err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}
	if local.count(ev.SeekerID) != 1 || local.count(ev.EmployerID) != 1 {
		t.Fatalf("expected one local delivery per participant, got %v", local.got)
	}
}

func TestDispatcher_SeenExpires(t *testing.T) {
	local := &fakeNotifier{}
	d := NewDispatcher(nil, nil, local, nil, nil)
	now := time.Now()
	d.now = func() time.Time { return now }
	ev := newEvent()

	_, _ = d.Dispatch(context.Background(), ev)
	now = now.Add(dedupeTTL + time.Minute)
	_, _ = d.Dispatch(context.Background(), ev)

	if local.count(ev.SeekerID) != 2 {
		t.Fatalf("expected redelivery after the dedupe window, got %d", local.count(ev.SeekerID))
	}
}

type fakeSink struct {
	mu     sync.Mutex
	events []match.Event
}

func (f *fakeSink) Dispatch(ctx context.Context, ev match.Event) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return true, nil
}

func (f *fakeSink) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeListenDB struct {
	mu       sync.Mutex
	calls    int
	payloads []string
}

// Listen fails on the first call and then delivers payloads and blocks.
func (f *fakeListenDB) Listen(ctx context.Context, channel string, fn func(payload string)) error {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	if call == 1 {
		return errors.New("connection reset")
	}
	for _, p := range f.payloads {
		fn(p)
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestListener_ReconnectsAndDispatches(t *testing.T) {
	ev := newEvent()
	raw, _ := json.Marshal(ev)
	db := &fakeListenDB{payloads: []string{"not json", string(raw)}}
	sink := &fakeSink{}

	l := NewListener(db, sink, nil)
	l.backoff = reconnectBackOff(5*time.Millisecond, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for sink.len() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}

	if sink.len() != 1 || sink.events[0].MatchID != ev.MatchID {
		t.Fatalf("unexpected events %+v", sink.events)
	}
	if db.calls < 2 {
		t.Fatalf("expected a reconnect, got %d calls", db.calls)
	}
}

func TestReconnectBackOff_NeverStopsAndCaps(t *testing.T) {
	b := reconnectBackOff(time.Second, 30*time.Second)
	for i := 0; i < 50; i++ {
		d := b.NextBackOff()
		if d == backoff.Stop {
			t.Fatalf("reconnect schedule stopped at %d", i)
		}
		if d > 45*time.Second {
			t.Fatalf("delay %s above cap with jitter", d)
		}
	}
	b.Reset()
	if d := b.NextBackOff(); d > 1500*time.Millisecond {
		t.Fatalf("expected reset to the initial delay, got %s", d)
	}
}

type fakeCreated struct {
	all []match.Match
}

// all must be kept in (created_at, id) order.
func (f *fakeCreated) ListCreatedAfter(ctx context.Context, after match.Cursor, limit int) ([]match.Match, error) {
	out := []match.Match{}
	for _, m := range f.all {
		if after.Before(m) {
			out = append(out, m)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func TestPoller_AdvancesWatermark(t *testing.T) {
	base := time.Now()
	repo := &fakeCreated{}
	for i := 0; i < pollBatch+5; i++ {
		repo.all = append(repo.all, match.Match{ID: uuid.New(), CreatedAt: base.Add(time.Duration(i+1) * time.Millisecond)})
	}
	sink := &fakeSink{}
	p := NewPoller(repo, sink, time.Minute, nil)

	n, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if n != pollBatch+5 {
		t.Fatalf("expected %d matches, got %d", pollBatch+5, n)
	}
	if p.Watermark() != match.CursorOf(repo.all[len(repo.all)-1]) {
		t.Fatalf("watermark not advanced")
	}

	n, err = p.Poll(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("expected nothing new, got %d (%v)", n, err)
	}
}

func TestPoller_SameTimestampAcrossBatches(t *testing.T) {
	at := time.Now().Truncate(time.Second)
	repo := &fakeCreated{}
	for i := 0; i < pollBatch*2+3; i++ {
		var id uuid.UUID
		binary.BigEndian.PutUint32(id[12:], uint32(i+1))
		repo.all = append(repo.all, match.Match{ID: id, CreatedAt: at})
	}
	sink := &fakeSink{}
	p := NewPoller(repo, sink, time.Minute, nil)
	p.watermark = match.Cursor{CreatedAt: at.Add(-time.Second)}

	n, err := p.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if n != len(repo.all) || sink.len() != len(repo.all) {
		t.Fatalf("expected %d dispatched, got %d (sink %d)", len(repo.all), n, sink.len())
	}
	seen := map[uuid.UUID]bool{}
	for _, ev := range sink.events {
		if seen[ev.MatchID] {
			t.Fatalf("match %s dispatched twice", ev.MatchID)
		}
		seen[ev.MatchID] = true
	}
}

type fakeSubscriber struct {
	err      error
	payloads [][]byte
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, channel string, fn func(payload []byte)) error {
	if f.err != nil {
		return f.err
	}
	for _, p := range f.payloads {
		fn(p)
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestRelay_DeliversToBothParticipants(t *testing.T) {
	ev := newEvent()
	payload, _ := json.Marshal(Message{Type: EventTypeMatchCreated, Match: ev})
	local := &fakeNotifier{}
	r := NewRelay(&fakeSubscriber{payloads: [][]byte{payload, []byte("{")}}, local, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for local.count(ev.EmployerID) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
	if local.count(ev.SeekerID) != 1 || local.count(ev.EmployerID) != 1 {
		t.Fatalf("unexpected deliveries %v", local.got)
	}
}

func TestRelay_IdlesWithoutRedis(t *testing.T) {
	r := NewRelay(&fakeSubscriber{err: cache.ErrUnavailable}, &fakeNotifier{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
}
