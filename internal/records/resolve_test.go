package records

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medicore/hms-console/pkg/types"
)

func TestResolveNames_UnknownSentinel(t *testing.T) {
	// Empty collections, absent ids and missing ids all degrade to
	// the sentinel; a lookup never fails and never fetches
	assert.Equal(t, UnknownLabel, ResolvePatientName(nil, types.Ref{ID: "p9"}))
	assert.Equal(t, UnknownLabel, ResolvePatientName([]types.Patient{{ID: "p1", Name: "Alice"}}, types.Ref{}))
	assert.Equal(t, UnknownLabel, ResolveDoctorName([]types.Doctor{{ID: "doc1", Name: "Dr. Smith"}}, types.Ref{ID: "doc2"}))
	assert.Equal(t, UnknownLabel, ResolveDepartmentName(nil, types.Ref{}))
}

func TestResolveNames_Found(t *testing.T) {
	patients := []types.Patient{{ID: "p1", Name: "Alice Wilson"}, {ID: "p2", Name: "Bob Davis"}}
	assert.Equal(t, "Bob Davis", ResolvePatientName(patients, types.Ref{ID: "p2"}))

	departments := []types.Department{{ID: "d1", Name: "Cardiology"}}
	assert.Equal(t, "Cardiology", ResolveDepartmentName(departments, types.Ref{ID: "d1"}))
}

func TestResolveNames_EmbeddedNameWins(t *testing.T) {
	// When the server embedded the record, its name is already on the
	// reference and no scan is needed
	assert.Equal(t, "Dr. Embedded", ResolveDoctorName(nil, types.Ref{ID: "doc9", Name: "Dr. Embedded"}))
}

func TestCountByDepartment(t *testing.T) {
	departments := []types.Department{
		{ID: "d1", Name: "Cardiology"},
		{ID: "d2", Name: "Neurology"},
	}
	doctors := []types.Doctor{
		{ID: "doc1", Department: types.Ref{ID: "d1"}},
		{ID: "doc2", Department: types.Ref{ID: "d2"}},
		{ID: "doc3", Department: types.Ref{ID: "d2"}},
		{ID: "doc4"},
	}
	appointments := []types.Appointment{
		{ID: "a1", Department: types.Ref{ID: "d1"}},
		{ID: "a2", Department: types.Ref{ID: "d1"}},
		{ID: "a3"},
	}

	CountByDepartment(departments, doctors, appointments)

	assert.Equal(t, 1, departments[0].DoctorCount)
	assert.Equal(t, 2, departments[0].AppointmentCount)
	assert.Equal(t, 2, departments[1].DoctorCount)
	assert.Equal(t, 0, departments[1].AppointmentCount)
}

func TestCountByDepartment_RecomputedFromScratch(t *testing.T) {
	departments := []types.Department{{ID: "d1", DoctorCount: 99, AppointmentCount: 99}}

	CountByDepartment(departments, nil, nil)

	assert.Equal(t, 0, departments[0].DoctorCount)
	assert.Equal(t, 0, departments[0].AppointmentCount)
}
