package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/zion-platform/zion-sync/internal/domain/auth"
	"github.com/zion-platform/zion-sync/internal/mocks"
	"github.com/zion-platform/zion-sync/internal/ports"
	"github.com/zion-platform/zion-sync/internal/testutil"
)

type managerFixture struct {
	manager *Manager
	store   *mocks.MockSessionStore
	events  *eventRecorder
}

// eventRecorder collects listener events and signals arrivals.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
	signal chan Event
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{signal: make(chan Event, 16)}
}

func (r *eventRecorder) record(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	r.signal <- e
}

func (r *eventRecorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *eventRecorder) wait(t *testing.T, timeout time.Duration) Event {
	t.Helper()
	select {
	case e := <-r.signal:
		return e
	case <-time.After(timeout):
		t.Fatal("timed out waiting for session event")
		return Event{}
	}
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := mocks.NewMockSessionStore(ctrl)
	manager, err := New(Options{Store: store})
	require.NoError(t, err)
	t.Cleanup(manager.Close)

	events := newEventRecorder()
	manager.OnChange(events.record)

	return &managerFixture{manager: manager, store: store, events: events}
}

func TestNew_RequiresStore(t *testing.T) {
	t.Parallel()

	_, err := New(Options{})
	require.Error(t, err)

	assert.Panics(t, func() { MustNew(Options{}) })
}

func TestManager_StartsInitializing(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	assert.Equal(t, StateInitializing, f.manager.State())

	_, ok := f.manager.Current()
	assert.False(t, ok)
}

func TestRestore_NoStoredSession(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	f.store.EXPECT().Load(gomock.Any()).Return(domainauth.Session{}, ports.ErrSessionNotFound)

	state := f.manager.Restore(context.Background())
	assert.Equal(t, StateUnauthenticated, state)

	event := f.events.wait(t, time.Second)
	assert.Equal(t, StateUnauthenticated, event.State)
	assert.Equal(t, ReasonRestore, event.Reason)
}

func TestRestore_StoreFailureIsAbsorbed(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	f.store.EXPECT().Load(gomock.Any()).Return(domainauth.Session{}, errors.New("disk on fire"))

	state := f.manager.Restore(context.Background())
	assert.Equal(t, StateUnauthenticated, state)
}

func TestRestore_ValidSession(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(time.Hour)).Build()
	f.store.EXPECT().Load(gomock.Any()).Return(sess, nil)

	state := f.manager.Restore(context.Background())
	assert.Equal(t, StateAuthenticated, state)

	current, ok := f.manager.Current()
	require.True(t, ok)
	assert.Equal(t, sess, current)

	event := f.events.wait(t, time.Second)
	assert.Equal(t, StateAuthenticated, event.State)
	assert.Equal(t, sess, event.Session)
}

func TestRestore_ExpiredTokenClearsStore(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(-time.Minute)).Build()
	f.store.EXPECT().Load(gomock.Any()).Return(sess, nil)
	f.store.EXPECT().Clear(gomock.Any()).Return(nil).Times(1)

	state := f.manager.Restore(context.Background())
	assert.Equal(t, StateUnauthenticated, state)

	event := f.events.wait(t, time.Second)
	assert.Equal(t, ReasonExpired, event.Reason)

	// A repeated restore against the now-cleared store is equally benign.
	f.store.EXPECT().Load(gomock.Any()).Return(domainauth.Session{}, ports.ErrSessionNotFound)
	assert.Equal(t, StateUnauthenticated, f.manager.Restore(context.Background()))
}

func TestRestore_UndecodableTokenClearsStore(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(time.Hour)).WithToken("garbage").Build()
	f.store.EXPECT().Load(gomock.Any()).Return(sess, nil)
	f.store.EXPECT().Clear(gomock.Any()).Return(nil).Times(1)

	state := f.manager.Restore(context.Background())
	assert.Equal(t, StateUnauthenticated, state)
}

func TestRestore_TokenWithoutExpiryClearsStore(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now()).WithToken(testutil.SignedTokenWithoutExpiry(t)).Build()
	f.store.EXPECT().Load(gomock.Any()).Return(sess, nil)
	f.store.EXPECT().Clear(gomock.Any()).Return(nil).Times(1)

	state := f.manager.Restore(context.Background())
	assert.Equal(t, StateUnauthenticated, state)
}

func TestRestore_SchedulesExpiryLogout(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(1100*time.Millisecond)).Build()
	f.store.EXPECT().Load(gomock.Any()).Return(sess, nil)
	f.store.EXPECT().Clear(gomock.Any()).Return(nil).Times(1)

	require.Equal(t, StateAuthenticated, f.manager.Restore(context.Background()))
	f.events.wait(t, time.Second)

	// The timer rounds the sub-second exp claim down, so the logout can
	// land shortly before the nominal expiry.
	event := f.events.wait(t, 3*time.Second)
	assert.Equal(t, StateUnauthenticated, event.State)
	assert.Equal(t, ReasonExpired, event.Reason)
	assert.Equal(t, StateUnauthenticated, f.manager.State())
}

func TestLogin_PersistsAndAuthenticates(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(time.Hour)).Build()
	f.store.EXPECT().Save(gomock.Any(), sess).Return(nil)

	require.NoError(t, f.manager.Login(context.Background(), sess))
	assert.Equal(t, StateAuthenticated, f.manager.State())

	event := f.events.wait(t, time.Second)
	assert.Equal(t, ReasonLogin, event.Reason)
}

func TestLogin_ExpiredToken(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(-time.Minute)).Build()

	err := f.manager.Login(context.Background(), sess)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, StateInitializing, f.manager.State())
}

func TestLogin_UndecodableToken(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(time.Hour)).WithToken("garbage").Build()

	err := f.manager.Login(context.Background(), sess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestLogin_SaveFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(time.Hour)).Build()
	f.store.EXPECT().Save(gomock.Any(), sess).Return(errors.New("keychain locked"))

	err := f.manager.Login(context.Background(), sess)
	require.Error(t, err)
	assert.Equal(t, StateInitializing, f.manager.State())
	assert.Empty(t, f.events.all())
}

func TestLogout_CancelsExpiryTimer(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(1500*time.Millisecond)).Build()
	f.store.EXPECT().Save(gomock.Any(), sess).Return(nil)
	f.store.EXPECT().Clear(gomock.Any()).Return(nil).Times(1)

	require.NoError(t, f.manager.Login(context.Background(), sess))
	f.events.wait(t, time.Second)

	f.manager.Logout(context.Background())
	event := f.events.wait(t, time.Second)
	assert.Equal(t, ReasonLogout, event.Reason)

	// The canceled timer must not produce a second logout event.
	time.Sleep(2 * time.Second)
	events := f.events.all()
	require.Len(t, events, 2)
}

func TestLogout_Idempotent(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(time.Hour)).Build()
	f.store.EXPECT().Save(gomock.Any(), sess).Return(nil)
	f.store.EXPECT().Clear(gomock.Any()).Return(nil).Times(1)

	require.NoError(t, f.manager.Login(context.Background(), sess))
	f.manager.Logout(context.Background())
	f.manager.Logout(context.Background())

	assert.Len(t, f.events.all(), 2)
}

func TestLogout_ClearFailureStillTransitions(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)
	sess := testutil.NewSession(t, time.Now().Add(time.Hour)).Build()
	f.store.EXPECT().Save(gomock.Any(), sess).Return(nil)
	f.store.EXPECT().Clear(gomock.Any()).Return(errors.New("keychain locked"))

	require.NoError(t, f.manager.Login(context.Background(), sess))
	f.manager.Logout(context.Background())

	assert.Equal(t, StateUnauthenticated, f.manager.State())
}

func TestLogin_ReplacesExpiryTimer(t *testing.T) {
	t.Parallel()

	f := newManagerFixture(t)

	short := testutil.NewSession(t, time.Now().Add(1100*time.Millisecond)).Build()
	long := testutil.NewSession(t, time.Now().Add(time.Hour)).WithUserID("user-456").Build()
	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	require.NoError(t, f.manager.Login(context.Background(), short))
	require.NoError(t, f.manager.Login(context.Background(), long))

	// The first session's timer is dead; only the hour-long one remains.
	time.Sleep(2500 * time.Millisecond)
	assert.Equal(t, StateAuthenticated, f.manager.State())

	current, ok := f.manager.Current()
	require.True(t, ok)
	assert.Equal(t, "user-456", current.UserID)
}
