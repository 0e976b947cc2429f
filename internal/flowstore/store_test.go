package flowstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/franceviagens/portal/internal/authclient"
	"github.com/franceviagens/portal/internal/domain"
	"github.com/franceviagens/portal/internal/flow"
	"github.com/franceviagens/portal/internal/i18n"
)

var pt = language.BrazilianPortuguese

type nopService struct{}

func (nopService) Login(context.Context, domain.LoginCredentials) (authclient.Reply, error) {
	return authclient.Reply{StatusCode: 200}, nil
}

func (nopService) Register(context.Context, domain.RegistrationDetails) (authclient.Reply, error) {
	return authclient.Reply{StatusCode: 200}, nil
}

func newTestStore(ttl time.Duration) *Store {
	return New(Factory{
		Login: func(lang language.Tag) *flow.LoginFlow {
			return flow.NewLogin(nopService{}, flow.WithPrinter(i18n.Printer(lang)))
		},
		Register: func(lang language.Tag) *flow.RegistrationFlow {
			return flow.NewRegistration(nopService{}, flow.WithPrinter(i18n.Printer(lang)))
		},
	}, ttl)
}

func TestStoreReturnsSameFlowPerVisitor(t *testing.T) {
	s := newTestStore(time.Minute)

	a := s.Login("visitor-a", pt)
	assert.Same(t, a, s.Login("visitor-a", pt))
	assert.NotSame(t, a, s.Login("visitor-b", pt))

	r := s.Register("visitor-a", pt)
	assert.Same(t, r, s.Register("visitor-a", pt))
	assert.Equal(t, 2, s.Len())
}

func TestStoreFlowsAreIndependent(t *testing.T) {
	s := newTestStore(time.Minute)
	s.Login("v", pt).SetEmail("login@example.com")
	s.Register("v", pt).SetEmail("register@example.com")

	assert.Equal(t, "login@example.com", s.Login("v", pt).Email())
	assert.Equal(t, "register@example.com", s.Register("v", pt).Email())
}

func TestStoreSweep(t *testing.T) {
	s := newTestStore(time.Minute)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }
	s.Login("old", pt)

	s.now = func() time.Time { return start.Add(50 * time.Second) }
	s.Register("fresh", pt)

	removed := s.Sweep(start.Add(90 * time.Second))
	assert.Equal(t, 1, removed)

	login, register := s.Peek("old")
	assert.Nil(t, login)
	assert.Nil(t, register)
	_, register = s.Peek("fresh")
	assert.NotNil(t, register)
}

func TestStoreDefaultTTL(t *testing.T) {
	s := newTestStore(0)
	assert.Equal(t, DefaultTTL, s.ttl)
}

func TestStoreRunStopsWithContext(t *testing.T) {
	s := newTestStore(time.Nanosecond)
	s.Login("v", pt)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	<-done
}

func TestStoreBuildsFlowsInVisitorLanguage(t *testing.T) {
	s := newTestStore(time.Minute)
	f := s.Register("v", language.English)
	f.SetUsername("ana")
	f.SetEmail("ana@example.com")
	f.SetPassword("secret")
	f.SetConfirmPassword("secret")

	r, err := f.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, i18n.RegisteredDefault, r.Success)

	r, err = s.Register("v", pt).Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, i18n.RegisteredDefault, r.Success, "language is fixed when the flow is created")
}

func TestStoreResetForgetsVisitor(t *testing.T) {
	s := newTestStore(time.Minute)
	s.Login("v", pt).SetEmail("ana@example.com")
	s.Register("other", pt)

	s.Reset("v")

	login, register := s.Peek("v")
	assert.Nil(t, login)
	assert.Nil(t, register)
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, s.Login("v", pt).Email(), "a flow created after Reset starts empty")
}

func TestStoreResetUnknownVisitorCreatesNothing(t *testing.T) {
	s := newTestStore(time.Minute)
	s.Reset("nobody")
	assert.Zero(t, s.Len())
}

func TestStoreResetAbandonsPendingSubmission(t *testing.T) {
	svc := &blockingService{release: make(chan struct{}), started: make(chan struct{}, 1)}
	s := New(Factory{
		Login: func(lang language.Tag) *flow.LoginFlow { return flow.NewLogin(svc) },
		Register: func(lang language.Tag) *flow.RegistrationFlow {
			return flow.NewRegistration(nopService{})
		},
	}, time.Minute)
	defer close(svc.release)

	f := s.Login("v", pt)
	f.SetEmail("ana@example.com")
	f.SetPassword("pw")

	done := make(chan domain.Result, 1)
	go func() {
		r, _ := f.Submit(context.Background())
		done <- r
	}()
	<-svc.started
	require.Equal(t, domain.StateSubmitting, f.Snapshot().State)

	s.Reset("v")

	select {
	case r := <-done:
		assert.Equal(t, domain.StateIdle, r.State)
	case <-time.After(2 * time.Second):
		t.Fatal("submission was not abandoned")
	}
}

// blockingService holds login requests until release is closed or the request
// is canceled.
type blockingService struct {
	release chan struct{}
	started chan struct{}
}

func (b *blockingService) Login(ctx context.Context, _ domain.LoginCredentials) (authclient.Reply, error) {
	b.started <- struct{}{}
	select {
	case <-b.release:
		return authclient.Reply{StatusCode: 200}, nil
	case <-ctx.Done():
		return authclient.Reply{}, fmt.Errorf("login: %w", authclient.ErrCanceled)
	}
}
