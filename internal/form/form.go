// Package form models the contact form as an explicit state machine:
//
//	Idle -> Validating -> Invalid
//	                   -> Submitting -> Success
//	                                 -> Error
//
// A Form validates locally before handing the values to a Submitter, never
// lets two submits overlap, and decides what the user sees afterwards.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yhteys/backend/internal/model"
	"github.com/yhteys/backend/internal/validation"
)

// State is a step of the form lifecycle.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Status messages shown after a submit.
const (
	MsgSuccess = "Kiitos viestistäsi! Palaamme asiaan mahdollisimman pian."
	MsgFailure = "Viestin lähetys epäonnistui. Yritä hetken kuluttua uudelleen."
)

// ErrSubmitInFlight is returned by Submit while another submit is running.
var ErrSubmitInFlight = errors.New("form: submit already in progress")

// Submitter delivers validated input to the server.
type Submitter interface {
	Submit(ctx context.Context, in model.ContactInput) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, in model.ContactInput) error

func (f SubmitterFunc) Submit(ctx context.Context, in model.ContactInput) error {
	return f(ctx, in)
}

// Form holds the values, field errors and status of one form instance.
// It is safe for concurrent use.
type Form struct {
	mu      sync.Mutex
	state   State
	values  model.ContactInput
	errs    validation.FieldErrors
	status  string
	lastErr error
}

// New returns an empty form in StateIdle.
func New() *Form {
	return &Form{errs: validation.FieldErrors{}}
}

// Set updates one field by name. Editing a field clears its error and the
// status message. For "accepted", "true" and "on" mean checked.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case validation.FieldName:
		f.values.Name = value
	case validation.FieldEmail:
		f.values.Email = value
	case validation.FieldSubject:
		f.values.Subject = value
	case validation.FieldMessage:
		f.values.Message = value
	case validation.FieldType:
		f.values.Type = value
	case validation.FieldAccepted:
		v := strings.ToLower(strings.TrimSpace(value))
		f.values.Accepted = v == "true" || v == "on"
	case validation.FieldCompany:
		f.values.Company = value
	default:
		return fmt.Errorf("form: unknown field %q", field)
	}
	f.edited(field)
	return nil
}

// SetAccepted sets the consent checkbox.
func (f *Form) SetAccepted(accepted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.Accepted = accepted
	f.edited(validation.FieldAccepted)
}

// edited must be called with mu held.
func (f *Form) edited(field string) {
	delete(f.errs, field)
	f.status = ""
	if f.state != StateSubmitting {
		f.state = StateIdle
	}
}

// Submit validates the current values and, if they pass, hands them to s.
// Validation failures are not errors: the form moves to StateInvalid and
// Submit returns nil. A failing submitter moves the form to StateError and
// its error is returned; the entered values are kept for a retry.
func (f *Form) Submit(ctx context.Context, s Submitter) error {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}

	f.state = StateValidating
	f.status = ""
	f.lastErr = nil
	errs := validation.Validate(f.values)
	if !errs.Valid() {
		f.errs = errs
		f.state = StateInvalid
		f.mu.Unlock()
		return nil
	}

	f.errs = validation.FieldErrors{}
	f.state = StateSubmitting
	values := f.values
	f.mu.Unlock()

	err := s.Submit(ctx, values)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateError
		f.status = MsgFailure
		f.lastErr = err
		return err
	}
	f.state = StateSuccess
	f.status = MsgSuccess
	f.values = model.ContactInput{}
	return nil
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Values returns the current field values.
func (f *Form) Values() model.ContactInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() validation.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(validation.FieldErrors, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// Status returns the overall status message, empty when there is none.
func (f *Form) Status() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Err returns the error of the last failed submit.
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Submitting reports whether a submit is in flight. UIs disable the submit
// control while it is true.
func (f *Form) Submitting() bool {
	return f.State() == StateSubmitting
}
