package domain

// State is the position of a flow in its Idle/Submitting/Error/Success cycle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateError
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateError:
		return "error"
	case StateSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Result is what a flow displays. Build it with the constructors below so that
// Error and Success can never both be set.
type Result struct {
	State   State
	Error   string
	Success string
}

// Idle is the initial result, and the result of a successful login.
func Idle() Result { return Result{State: StateIdle} }

// Submitting marks a request in flight.
func Submitting() Result { return Result{State: StateSubmitting} }

// Failed returns an error result; any success message is cleared.
func Failed(msg string) Result { return Result{State: StateError, Error: msg} }

// Succeeded returns a success result; any error message is cleared.
func Succeeded(msg string) Result { return Result{State: StateSuccess, Success: msg} }

// HasError reports whether an error message should be displayed.
func (r Result) HasError() bool { return r.Error != "" }

// HasSuccess reports whether a success message should be displayed.
func (r Result) HasSuccess() bool { return r.Success != "" }
