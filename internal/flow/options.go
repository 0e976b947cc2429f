package flow

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/message"

	"github.com/franceviagens/portal/internal/authclient"
	"github.com/franceviagens/portal/internal/domain"
	"github.com/franceviagens/portal/internal/i18n"
)

var validate = validator.New()

// Kind names a flow in outcome events.
type Kind string

const (
	KindLogin    Kind = "login"
	KindRegister Kind = "register"
)

// Reason classifies how a submission ended.
type Reason string

const (
	ReasonAccepted    Reason = "accepted"
	ReasonRejected    Reason = "rejected"
	ReasonUnreachable Reason = "unreachable"
	ReasonInvalid     Reason = "invalid"
)

// Outcome describes a completed submission. It never carries passwords.
type Outcome struct {
	Flow       Kind         `json:"flow"`
	State      domain.State `json:"state"`
	Reason     Reason       `json:"reason"`
	Email      string       `json:"email"`
	StatusCode int          `json:"status_code,omitempty"`
	At         time.Time    `json:"at"`
}

// Notifier receives every completed submission.
type Notifier interface {
	Notify(ctx context.Context, o Outcome)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, o Outcome)

func (f NotifierFunc) Notify(ctx context.Context, o Outcome) { f(ctx, o) }

type options struct {
	printer         *message.Printer
	notifier        Notifier
	confirmPrecheck bool
}

// Option configures a flow.
type Option func(*options)

// WithPrinter sets the printer used for generic messages.
func WithPrinter(p *message.Printer) Option {
	return func(o *options) { o.printer = p }
}

// WithNotifier registers a receiver for outcome events.
func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithConfirmPrecheck makes RegistrationFlow refuse to send a registration
// whose password and confirmation differ. LoginFlow ignores it.
func WithConfirmPrecheck(enabled bool) Option {
	return func(o *options) { o.confirmPrecheck = enabled }
}

func newOptions(opts []Option) options {
	o := options{printer: i18n.Printer(i18n.Default)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) text(key string) string {
	return o.printer.Sprintf(key)
}

func (o options) notify(ctx context.Context, out Outcome) {
	if o.notifier == nil {
		return
	}
	out.At = time.Now().UTC()
	o.notifier.Notify(ctx, out)
}

// failure turns a request error into the displayed error and its reason.
// Rejections show the server's msg when it sent a non-empty one.
func (o options) failure(err error) (domain.Result, Reason, int) {
	if rejected, ok := authclient.AsRejected(err); ok {
		if rejected.HasMessage && rejected.Message != "" {
			return domain.Failed(rejected.Message), ReasonRejected, rejected.StatusCode
		}
		return domain.Failed(o.text(i18n.ErrRejected)), ReasonRejected, rejected.StatusCode
	}
	return domain.Failed(o.text(i18n.ErrUnreachable)), ReasonUnreachable, 0
}

func isCanceled(err error) bool {
	return errors.Is(err, authclient.ErrCanceled)
}
