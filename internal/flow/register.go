package flow

import (
	"context"

	"github.com/franceviagens/portal/internal/authclient"
	"github.com/franceviagens/portal/internal/domain"
	"github.com/franceviagens/portal/internal/i18n"
)

// RegistrationService sends registration requests. *authclient.Client implements it.
type RegistrationService interface {
	Register(ctx context.Context, details domain.RegistrationDetails) (authclient.Reply, error)
}

// RegistrationFlow collects the sign-up form and submits it once per Submit.
// Its result is Idle, Error or Success, and Error and Success are never both set.
type RegistrationFlow struct {
	machine
	svc     RegistrationService
	opts    options
	details domain.RegistrationDetails
}

// NewRegistration creates an idle RegistrationFlow.
func NewRegistration(svc RegistrationService, opts ...Option) *RegistrationFlow {
	return &RegistrationFlow{svc: svc, opts: newOptions(opts)}
}

func (f *RegistrationFlow) SetUsername(v string) {
	f.mu.Lock()
	f.details.Username = v
	f.mu.Unlock()
}

func (f *RegistrationFlow) SetEmail(v string) {
	f.mu.Lock()
	f.details.Email = v
	f.mu.Unlock()
}

func (f *RegistrationFlow) SetPassword(v string) {
	f.mu.Lock()
	f.details.Password = v
	f.mu.Unlock()
}

func (f *RegistrationFlow) SetConfirmPassword(v string) {
	f.mu.Lock()
	f.details.ConfirmPassword = v
	f.mu.Unlock()
}

// Username returns the current username field.
func (f *RegistrationFlow) Username() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.details.Username
}

// Email returns the current email field.
func (f *RegistrationFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.details.Email
}

// Submit sends the current details and returns the displayed result.
// It returns domain.ErrSubmissionInProgress without sending anything when a
// previous submission is still pending.
func (f *RegistrationFlow) Submit(ctx context.Context) (domain.Result, error) {
	f.mu.Lock()
	if f.result.State == domain.StateSubmitting {
		f.mu.Unlock()
		return domain.Submitting(), domain.ErrSubmissionInProgress
	}
	details := f.details
	if key, ok := f.precheck(details); !ok {
		r := domain.Failed(f.opts.text(key))
		f.result = r
		f.mu.Unlock()
		f.opts.notify(ctx, Outcome{Flow: KindRegister, State: r.State, Reason: ReasonInvalid, Email: details.Email})
		return r, nil
	}
	reqCtx, gen := f.beginLocked(ctx)
	f.mu.Unlock()

	reply, err := f.svc.Register(reqCtx, details)
	if err != nil && isCanceled(err) {
		return f.revert(gen), nil
	}

	out := Outcome{Flow: KindRegister, Email: details.Email}
	var r domain.Result
	if err != nil {
		r, out.Reason, out.StatusCode = f.opts.failure(err)
	} else {
		msg, ok := reply.Body.Message()
		if !ok || msg == "" {
			msg = f.opts.text(i18n.RegisteredDefault)
		}
		r, out.Reason, out.StatusCode = domain.Succeeded(msg), ReasonAccepted, reply.StatusCode
	}

	r, applied := f.finish(gen, r)
	if applied {
		out.State = r.State
		f.opts.notify(ctx, out)
	}
	return r, nil
}

// precheck returns the message key of the first local validation failure.
func (f *RegistrationFlow) precheck(d domain.RegistrationDetails) (string, bool) {
	if err := validate.Struct(d); err != nil {
		return i18n.ErrMissingFields, false
	}
	if f.opts.confirmPrecheck {
		if err := validate.VarWithValue(d.Password, d.ConfirmPassword, "eqcsfield"); err != nil {
			return i18n.ErrMismatch, false
		}
	}
	return "", true
}
