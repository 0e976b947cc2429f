package flow

import (
	"context"

	"github.com/franceviagens/portal/internal/authclient"
	"github.com/franceviagens/portal/internal/domain"
	"github.com/franceviagens/portal/internal/i18n"
)

// LoginService sends login requests. *authclient.Client implements it.
type LoginService interface {
	Login(ctx context.Context, creds domain.LoginCredentials) (authclient.Reply, error)
}

// LoginFlow collects an email and password and submits them once per Submit.
// It only ever displays Idle or Error; a successful login clears the error.
type LoginFlow struct {
	machine
	svc   LoginService
	opts  options
	creds domain.LoginCredentials
}

// NewLogin creates an idle LoginFlow.
func NewLogin(svc LoginService, opts ...Option) *LoginFlow {
	return &LoginFlow{svc: svc, opts: newOptions(opts)}
}

func (f *LoginFlow) SetEmail(v string) {
	f.mu.Lock()
	f.creds.Email = v
	f.mu.Unlock()
}

func (f *LoginFlow) SetPassword(v string) {
	f.mu.Lock()
	f.creds.Password = v
	f.mu.Unlock()
}

// Email returns the current email field, for re-rendering the form.
func (f *LoginFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creds.Email
}

// Submit sends the current credentials and returns the displayed result.
// It returns domain.ErrSubmissionInProgress without sending anything when a
// previous submission is still pending.
func (f *LoginFlow) Submit(ctx context.Context) (domain.Result, error) {
	f.mu.Lock()
	if f.result.State == domain.StateSubmitting {
		f.mu.Unlock()
		return domain.Submitting(), domain.ErrSubmissionInProgress
	}
	creds := f.creds
	if err := validate.Struct(creds); err != nil {
		r := domain.Failed(f.opts.text(i18n.ErrMissingFields))
		f.result = r
		f.mu.Unlock()
		f.opts.notify(ctx, Outcome{Flow: KindLogin, State: r.State, Reason: ReasonInvalid, Email: creds.Email})
		return r, nil
	}
	reqCtx, gen := f.beginLocked(ctx)
	f.mu.Unlock()

	reply, err := f.svc.Login(reqCtx, creds)
	if err != nil && isCanceled(err) {
		return f.revert(gen), nil
	}

	out := Outcome{Flow: KindLogin, Email: creds.Email}
	var r domain.Result
	if err != nil {
		r, out.Reason, out.StatusCode = f.opts.failure(err)
	} else {
		r, out.Reason, out.StatusCode = domain.Idle(), ReasonAccepted, reply.StatusCode
	}

	r, applied := f.finish(gen, r)
	if applied {
		out.State = r.State
		f.opts.notify(ctx, out)
	}
	return r, nil
}
