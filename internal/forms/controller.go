package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/medicore/hms-console/pkg/types"
)

// Phase is the form lifecycle state. The tagged representation makes
// impossible combinations (submitting while closed) unrepresentable.
type Phase string

const (
	PhaseClosed     Phase = "closed"
	PhaseOpen       Phase = "open"
	PhaseSubmitting Phase = "submitting"
)

// ErrNotOpen is returned when Submit is called outside the Open phase
var ErrNotOpen = errors.New("form is not open")

// SubmitFunc issues the create (entityID empty) or update (entityID
// present) through the gateway
type SubmitFunc func(ctx context.Context, entityID string, fields map[string]string) error

// Controller drives one entity's create/edit form: field values,
// per-field errors, and the Closed/Open/Submitting lifecycle. All
// field validation is resolved locally; an invalid draft never
// reaches the network.
type Controller struct {
	mu        sync.Mutex
	phase     Phase
	entityID  string
	fields    map[string]string
	fieldErrs map[string]string
	formErr   string
	rules     []Rule
	submit    SubmitFunc
	onSaved   func()
}

// View is a read-only snapshot of the form state for rendering
type View struct {
	Phase       Phase
	EntityID    string
	Fields      map[string]string
	FieldErrors map[string]string
	FormError   string
}

// NewController creates a form controller. onSaved runs after a
// successful submit, typically the owning list's reload.
func NewController(rules []Rule, submit SubmitFunc, onSaved func()) *Controller {
	return &Controller{
		phase:   PhaseClosed,
		rules:   rules,
		submit:  submit,
		onSaved: onSaved,
	}
}

// OpenForCreate opens the form with default values and no entity
// identity
func (c *Controller) OpenForCreate(defaults map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = PhaseOpen
	c.entityID = ""
	c.fields = copyFields(defaults)
	c.fieldErrs = map[string]string{}
	c.formErr = ""
}

// OpenForEdit opens the form with a copy of the entity's editable
// fields; the identity is kept for the later update call
func (c *Controller) OpenForEdit(entityID string, fields map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = PhaseOpen
	c.entityID = entityID
	c.fields = copyFields(fields)
	c.fieldErrs = map[string]string{}
	c.formErr = ""
}

// ChangeField updates one draft value and clears that field's error
func (c *Controller) ChangeField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseOpen || c.fields == nil {
		return
	}
	c.fields[name] = value
	delete(c.fieldErrs, name)
}

// Cancel discards the draft and closes the form, whatever its
// validity. No write request is ever issued from here.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.phase = PhaseClosed
	c.entityID = ""
	c.fields = nil
	c.fieldErrs = nil
	c.formErr = ""
}

// Submit validates the draft and, only when every field passes,
// issues the create or update. Validation failures keep the form open
// with per-field errors and never reach the network. A server failure
// surfaces as a non-field error and the form stays open.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseOpen {
		c.mu.Unlock()
		return ErrNotOpen
	}

	errs := map[string]string{}
	for _, rule := range c.rules {
		if _, seen := errs[rule.Field]; seen {
			continue
		}
		if msg := rule.Check(c.fields[rule.Field]); msg != "" {
			errs[rule.Field] = msg
		}
	}
	if len(errs) > 0 {
		c.fieldErrs = errs
		c.mu.Unlock()
		return nil
	}

	c.phase = PhaseSubmitting
	entityID := c.entityID
	fields := copyFields(c.fields)
	c.mu.Unlock()

	err := c.submit(ctx, entityID, fields)

	c.mu.Lock()
	if err != nil {
		// A forced logout during the call cancels the form; its close
		// is final and the draft stays discarded
		if c.phase == PhaseSubmitting {
			c.phase = PhaseOpen
			c.formErr = submitFailureMessage(err)
		}
		c.mu.Unlock()
		return err
	}

	c.phase = PhaseClosed
	c.entityID = ""
	c.fields = nil
	c.fieldErrs = nil
	c.formErr = ""
	onSaved := c.onSaved
	c.mu.Unlock()

	if onSaved != nil {
		onSaved()
	}
	return nil
}

// State returns a snapshot of the form for rendering
func (c *Controller) State() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		Phase:       c.phase,
		EntityID:    c.entityID,
		Fields:      copyFields(c.fields),
		FieldErrors: copyFields(c.fieldErrs),
		FormError:   c.formErr,
	}
}

func copyFields(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func submitFailureMessage(err error) string {
	var ce *types.ConsoleError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return err.Error()
}
