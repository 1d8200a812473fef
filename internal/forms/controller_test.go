package forms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hms-console/pkg/types"
)

// recordingSubmit captures what the controller would have sent
type recordingSubmit struct {
	calls    int
	entityID string
	fields   map[string]string
	err      error
}

func (r *recordingSubmit) fn(ctx context.Context, entityID string, fields map[string]string) error {
	r.calls++
	r.entityID = entityID
	r.fields = fields
	return r.err
}

func testRules() []Rule {
	return []Rule{
		{Field: "name", Check: Required("name is required")},
		{Field: "email", Check: Required("email is required")},
		{Field: "email", Check: Email("invalid email")},
		{Field: "age", Check: IntRange(1, 120, "age must be between 1 and 120")},
	}
}

func TestOpenForCreate(t *testing.T) {
	c := NewController(testRules(), (&recordingSubmit{}).fn, nil)

	c.OpenForCreate(map[string]string{"age": "30"})

	view := c.State()
	assert.Equal(t, PhaseOpen, view.Phase)
	assert.Empty(t, view.EntityID)
	assert.Equal(t, "30", view.Fields["age"])
	assert.Empty(t, view.FieldErrors)
}

func TestOpenForEdit_KeepsEntityIdentity(t *testing.T) {
	c := NewController(testRules(), (&recordingSubmit{}).fn, nil)

	c.OpenForEdit("p1", map[string]string{"name": "Alice Wilson"})

	view := c.State()
	assert.Equal(t, "p1", view.EntityID)
	assert.Equal(t, "Alice Wilson", view.Fields["name"])
}

func TestChangeField_ClearsThatFieldsError(t *testing.T) {
	submit := &recordingSubmit{}
	c := NewController(testRules(), submit.fn, nil)
	c.OpenForCreate(nil)
	require.NoError(t, c.Submit(context.Background()))
	require.NotEmpty(t, c.State().FieldErrors["name"])
	require.NotEmpty(t, c.State().FieldErrors["email"])

	c.ChangeField("name", "Alice Wilson")

	view := c.State()
	assert.Empty(t, view.FieldErrors["name"])
	// Other fields keep their errors until edited or revalidated
	assert.NotEmpty(t, view.FieldErrors["email"])
}

func TestChangeField_IgnoredWhenClosed(t *testing.T) {
	c := NewController(testRules(), (&recordingSubmit{}).fn, nil)

	c.ChangeField("name", "Alice Wilson")

	assert.Equal(t, PhaseClosed, c.State().Phase)
}

func TestSubmit_InvalidDraftNeverReachesNetwork(t *testing.T) {
	submit := &recordingSubmit{}
	c := NewController(testRules(), submit.fn, nil)
	c.OpenForCreate(map[string]string{
		"name":  "Alice Wilson",
		"email": "alice@hospital.test",
		"age":   "0",
	})

	err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, submit.calls)
	view := c.State()
	assert.Equal(t, PhaseOpen, view.Phase)
	assert.Equal(t, "age must be between 1 and 120", view.FieldErrors["age"])
}

func TestSubmit_FirstFailingRulePerFieldWins(t *testing.T) {
	submit := &recordingSubmit{}
	c := NewController(testRules(), submit.fn, nil)
	c.OpenForCreate(map[string]string{"name": "Alice Wilson", "age": "30"})

	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, "email is required", c.State().FieldErrors["email"])
}

func TestSubmit_SuccessClosesAndNotifies(t *testing.T) {
	submit := &recordingSubmit{}
	saved := false
	c := NewController(testRules(), submit.fn, func() { saved = true })
	c.OpenForEdit("p1", map[string]string{
		"name":  "Alice Wilson",
		"email": "alice@hospital.test",
		"age":   "30",
	})

	err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, submit.calls)
	assert.Equal(t, "p1", submit.entityID)
	assert.Equal(t, "Alice Wilson", submit.fields["name"])
	assert.True(t, saved)
	assert.Equal(t, PhaseClosed, c.State().Phase)
}

func TestSubmit_ServerFailureKeepsFormOpen(t *testing.T) {
	submit := &recordingSubmit{err: types.NewServerError("email already registered", 500)}
	saved := false
	c := NewController(testRules(), submit.fn, func() { saved = true })
	c.OpenForCreate(map[string]string{
		"name":  "Alice Wilson",
		"email": "alice@hospital.test",
		"age":   "30",
	})

	err := c.Submit(context.Background())

	require.Error(t, err)
	assert.False(t, saved)
	view := c.State()
	assert.Equal(t, PhaseOpen, view.Phase)
	assert.Equal(t, "email already registered", view.FormError)
	// The draft survives so the user can correct and retry
	assert.Equal(t, "Alice Wilson", view.Fields["name"])
}

func TestSubmit_ForcedLogoutDuringSubmitKeepsFormClosed(t *testing.T) {
	// A 401 raised by the submit call runs the session's invalidate
	// subscribers, which cancel this form, before Submit resumes. The
	// cancel is final: the form must not reopen with a cleared draft.
	saved := false
	var c *Controller
	c = NewController(testRules(), func(ctx context.Context, entityID string, fields map[string]string) error {
		c.Cancel()
		return types.NewUnauthorizedError("token expired")
	}, func() { saved = true })
	c.OpenForCreate(map[string]string{
		"name":  "Alice Wilson",
		"email": "alice@hospital.test",
		"age":   "30",
	})

	err := c.Submit(context.Background())

	require.Error(t, err)
	assert.True(t, types.IsUnauthorized(err))
	assert.False(t, saved)
	view := c.State()
	assert.Equal(t, PhaseClosed, view.Phase)
	assert.Empty(t, view.Fields)
	assert.Empty(t, view.FormError)

	// The closed form ignores late field writes instead of panicking
	c.ChangeField("name", "after logout")
	assert.Equal(t, PhaseClosed, c.State().Phase)
	assert.Empty(t, c.State().Fields)
}

func TestSubmit_WhenClosedReturnsErrNotOpen(t *testing.T) {
	submit := &recordingSubmit{}
	c := NewController(testRules(), submit.fn, nil)

	err := c.Submit(context.Background())

	assert.ErrorIs(t, err, ErrNotOpen)
	assert.Equal(t, 0, submit.calls)
}

func TestCancel_DiscardsDraftWithoutSubmitting(t *testing.T) {
	submit := &recordingSubmit{}
	c := NewController(testRules(), submit.fn, nil)
	c.OpenForCreate(map[string]string{"name": "half-typed"})

	c.Cancel()

	assert.Equal(t, 0, submit.calls)
	view := c.State()
	assert.Equal(t, PhaseClosed, view.Phase)
	assert.Empty(t, view.Fields)
}

func TestCancel_InvalidDraftStillCloses(t *testing.T) {
	submit := &recordingSubmit{}
	c := NewController(testRules(), submit.fn, nil)
	c.OpenForCreate(nil)
	require.NoError(t, c.Submit(context.Background()))
	require.NotEmpty(t, c.State().FieldErrors)

	c.Cancel()

	view := c.State()
	assert.Equal(t, PhaseClosed, view.Phase)
	assert.Empty(t, view.FieldErrors)
	assert.Equal(t, 0, submit.calls)
}
