package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hms-console/internal/records"
	"github.com/medicore/hms-console/pkg/types"
)

func appointmentSnapshot() records.Snapshot {
	return records.Snapshot{
		Patients: []types.Patient{{ID: "p1", Name: "Alice Wilson"}},
		Doctors:  []types.Doctor{{ID: "doc1", Name: "Dr. Smith"}},
		Departments: []types.Department{
			{ID: "d1", Name: "Cardiology"},
		},
		Appointments: []types.Appointment{
			{
				ID:         "a1",
				Patient:    types.Ref{ID: "p1"},
				Doctor:     types.Ref{ID: "doc1"},
				Department: types.Ref{ID: "d1"},
				Date:       "2030-01-15",
				Time:       "10:00",
				Status:     "Scheduled",
				Reason:     "Annual checkup",
			},
			{
				ID:         "a2",
				Patient:    types.Ref{ID: "p1"},
				Department: types.Ref{ID: "d1"},
				Date:       "2030-02-01",
				Time:       "11:30",
				Status:     "Scheduled",
				Reason:     "Follow-up visit",
			},
		},
	}
}

func TestRows_AppointmentSearchMatchesReason(t *testing.T) {
	snap := appointmentSnapshot()

	out := rows(TabAppointments, snap, "checkup")

	require.Len(t, out, 1)
	assert.Equal(t, "a1", out[0].ID)
}

func TestRows_AppointmentSearchMatchesResolvedNames(t *testing.T) {
	snap := appointmentSnapshot()

	byPatient := rows(TabAppointments, snap, "alice")
	assert.Len(t, byPatient, 2)

	byDoctor := rows(TabAppointments, snap, "smith")
	require.Len(t, byDoctor, 1)
	assert.Equal(t, "a1", byDoctor[0].ID)
}

func TestRows_EmptySearchKeepsOrder(t *testing.T) {
	snap := appointmentSnapshot()

	out := rows(TabAppointments, snap, "")

	require.Len(t, out, 2)
	assert.Equal(t, "a1", out[0].ID)
	assert.Equal(t, "a2", out[1].ID)
}
