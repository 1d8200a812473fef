package records

import "github.com/medicore/hms-console/pkg/types"

// UnknownLabel is the sentinel for a foreign key that does not
// resolve against the loaded data. Lookups degrade to it instead of
// failing: the referenced record may be stale or simply not loaded
// yet, and a resolver never triggers a fetch.
const UnknownLabel = "Unknown"

// ResolvePatientName resolves a patient id to a display name
func ResolvePatientName(patients []types.Patient, ref types.Ref) string {
	if ref.Name != "" {
		return ref.Name
	}
	if ref.IsZero() {
		return UnknownLabel
	}
	for _, p := range patients {
		if p.ID == ref.ID {
			return p.Name
		}
	}
	return UnknownLabel
}

// ResolveDoctorName resolves a doctor id to a display name
func ResolveDoctorName(doctors []types.Doctor, ref types.Ref) string {
	if ref.Name != "" {
		return ref.Name
	}
	if ref.IsZero() {
		return UnknownLabel
	}
	for _, d := range doctors {
		if d.ID == ref.ID {
			return d.Name
		}
	}
	return UnknownLabel
}

// ResolveDepartmentName resolves a department id to its title
func ResolveDepartmentName(departments []types.Department, ref types.Ref) string {
	if ref.Name != "" {
		return ref.Name
	}
	if ref.IsZero() {
		return UnknownLabel
	}
	for _, d := range departments {
		if d.ID == ref.ID {
			return d.Name
		}
	}
	return UnknownLabel
}

// CountByDepartment recomputes the client-side doctor and appointment
// counters on the department slice in place. Counts are derived by
// linear scan over the loaded collections and are never persisted.
func CountByDepartment(departments []types.Department, doctors []types.Doctor, appointments []types.Appointment) {
	for i := range departments {
		id := departments[i].ID
		doctorCount := 0
		for _, d := range doctors {
			if !d.Department.IsZero() && d.Department.ID == id {
				doctorCount++
			}
		}
		appointmentCount := 0
		for _, a := range appointments {
			if !a.Department.IsZero() && a.Department.ID == id {
				appointmentCount++
			}
		}
		departments[i].DoctorCount = doctorCount
		departments[i].AppointmentCount = appointmentCount
	}
}
