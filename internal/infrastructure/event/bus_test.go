package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/culinary/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "SalesOrder", uuid.New())}
}

type recordingHandler struct {
	mu      sync.Mutex
	types   []string
	handled []shared.DomainEvent
	err     error
	panics  bool
}

func (h *recordingHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, evt)
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	submitted := &recordingHandler{types: []string{"SalesOrderSubmitted"}}
	all := &recordingHandler{}
	bus.Subscribe(submitted)
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("SalesOrderSubmitted"),
		newTestEvent("AgreementSubmitted"),
	))

	assert.Equal(t, 1, submitted.count())
	assert.Equal(t, 2, all.count())

	bus.Unsubscribe(submitted)
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("SalesOrderSubmitted")))
	assert.Equal(t, 1, submitted.count())
	assert.Equal(t, 3, all.count())
}

func TestInMemoryEventBus_HandlerFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := &recordingHandler{types: []string{"SalesOrderSubmitted"}, err: assert.AnError}
	panicking := &recordingHandler{types: []string{"SalesOrderSubmitted"}, panics: true}
	after := &recordingHandler{types: []string{"SalesOrderSubmitted"}}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(after)

	err := bus.Publish(context.Background(), newTestEvent("SalesOrderSubmitted"))
	require.NoError(t, err)
	assert.Equal(t, 1, after.count(), "later handlers still run")
	assert.Equal(t, 1, logs.FilterMessage("event handler failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("event handler panicked").Len())
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	assert.True(t, bus.Running())
	require.NoError(t, bus.Stop(context.Background()))
	assert.False(t, bus.Running())
}

func TestHandlerRegistry_Count(t *testing.T) {
	r := NewHandlerRegistry()
	h := &recordingHandler{}
	r.Register(h, "A", "B")
	r.Register(&recordingHandler{})
	assert.Equal(t, 2, r.Count())
	assert.Len(t, r.GetHandlers("A"), 2)

	r.Unregister(h)
	assert.Equal(t, 1, r.Count())
	assert.Len(t, r.GetHandlers("A"), 1)
}

type mockIdempotencyStore struct {
	mock.Mock
}

func (m *mockIdempotencyStore) MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, id, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) IsProcessed(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

func TestIdempotentHandler(t *testing.T) {
	ctx := context.Background()
	evt := newTestEvent("SalesOrderSubmitted")
	id := evt.EventID().String()

	t.Run("runs new events once", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		inner := &recordingHandler{types: []string{"SalesOrderSubmitted"}}
		h := NewIdempotentHandler(inner, store, zap.NewNop())

		store.On("MarkProcessed", ctx, id, shared.DefaultIdempotencyTTL).Return(true, nil).Once()
		store.On("MarkProcessed", ctx, id, shared.DefaultIdempotencyTTL).Return(false, nil).Once()

		require.NoError(t, h.Handle(ctx, evt))
		require.NoError(t, h.Handle(ctx, evt))

		assert.Equal(t, 1, inner.count())
		assert.Equal(t, IdempotencyStats{EventsProcessed: 1, EventsDuplicate: 1}, h.Stats())
		assert.Equal(t, []string{"SalesOrderSubmitted"}, h.EventTypes())
		store.AssertExpectations(t)
	})

	t.Run("store failure still processes", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		inner := &recordingHandler{}
		h := NewIdempotentHandler(inner, store, zap.NewNop())
		store.On("MarkProcessed", ctx, id, mock.Anything).Return(false, assert.AnError)

		require.NoError(t, h.Handle(ctx, evt))
		assert.Equal(t, 1, inner.count())
	})

	t.Run("handler error is returned", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		inner := &recordingHandler{err: assert.AnError}
		h := NewIdempotentHandler(inner, store, zap.NewNop())
		store.On("MarkProcessed", ctx, id, mock.Anything).Return(true, nil)

		assert.ErrorIs(t, h.Handle(ctx, evt), assert.AnError)
		assert.Equal(t, int64(1), h.Stats().EventsFailed)
	})

	t.Run("disabled bypasses the store", func(t *testing.T) {
		store := new(mockIdempotencyStore)
		inner := &recordingHandler{}
		h := NewIdempotentHandler(inner, store, zap.NewNop(), WithIdempotencyConfig(IdempotencyConfig{}))

		require.NoError(t, h.Handle(ctx, evt))
		require.NoError(t, h.Handle(ctx, evt))
		assert.Equal(t, 2, inner.count())
		store.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
	})
}
