package console

import (
	"strconv"
	"strings"

	"github.com/medicore/hms-console/internal/records"
	"github.com/medicore/hms-console/pkg/types"
)

// Management screen tabs
const (
	TabPatients     = "patients"
	TabDoctors      = "doctors"
	TabDepartments  = "departments"
	TabAppointments = "appointments"
)

// Option is one choice in a select field
type Option struct {
	Value string
	Label string
}

// FieldSpec describes one form field for the generic form template
type FieldSpec struct {
	Name    string
	Label   string
	Type    string
	Options []Option
}

// Row is one rendered table row
type Row struct {
	ID    string
	Cells []string
}

// tabsForRole returns the management screens a role may mount.
// Admins manage everything; doctors work with patients and
// appointments (departments are still loaded for name resolution).
func tabsForRole(role types.UserRole) []string {
	if role == types.RoleAdmin {
		return []string{TabPatients, TabDoctors, TabDepartments, TabAppointments}
	}
	return []string{TabPatients, TabAppointments}
}

func tabAllowed(role types.UserRole, tab string) bool {
	for _, t := range tabsForRole(role) {
		if t == tab {
			return true
		}
	}
	return false
}

// canDelete applies the defensive authorization policy: record
// deletion is an admin action, and only the entities with a delete
// endpoint get one
func canDelete(role types.UserRole, tab string) bool {
	if role != types.RoleAdmin {
		return false
	}
	return tab == TabPatients || tab == TabDepartments
}

var bloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// fieldSpecs builds the active tab's form fields. Select options for
// foreign keys come from the already-loaded collections; appointment
// notes are only offered to the doctor role.
func fieldSpecs(tab string, snap records.Snapshot, role types.UserRole) []FieldSpec {
	switch tab {
	case TabPatients:
		bg := make([]Option, 0, len(bloodGroups))
		for _, g := range bloodGroups {
			bg = append(bg, Option{Value: g, Label: g})
		}
		return []FieldSpec{
			{Name: "name", Label: "Full Name", Type: "text"},
			{Name: "email", Label: "Email", Type: "email"},
			{Name: "phno", Label: "Phone Number", Type: "tel"},
			{Name: "age", Label: "Age", Type: "number"},
			{Name: "gender", Label: "Gender", Options: []Option{
				{Value: "Male", Label: "Male"},
				{Value: "Female", Label: "Female"},
				{Value: "Other", Label: "Other"},
			}},
			{Name: "bg", Label: "Blood Group", Options: bg},
			{Name: "address", Label: "Address", Type: "text"},
			{Name: "emerno", Label: "Emergency Contact", Type: "tel"},
			{Name: "medical_history", Label: "Medical History", Type: "text"},
		}
	case TabDoctors:
		depts := make([]Option, 0, len(snap.Departments)+1)
		depts = append(depts, Option{Value: "", Label: "Select department"})
		for _, d := range snap.Departments {
			depts = append(depts, Option{Value: d.ID, Label: d.Name})
		}
		return []FieldSpec{
			{Name: "name", Label: "Full Name", Type: "text"},
			{Name: "email", Label: "Email", Type: "email"},
			{Name: "phone", Label: "Phone Number", Type: "tel"},
			{Name: "specialization", Label: "Specialization", Type: "text"},
			{Name: "department", Label: "Department", Options: depts},
			{Name: "exp", Label: "Experience", Type: "text"},
			{Name: "qual", Label: "Qualification", Type: "text"},
			{Name: "status", Label: "Status", Options: []Option{
				{Value: types.DoctorStatusActive, Label: "Active"},
				{Value: types.DoctorStatusInactive, Label: "Inactive"},
			}},
		}
	case TabDepartments:
		return []FieldSpec{
			{Name: "dept", Label: "Department Name", Type: "text"},
			{Name: "description", Label: "Description", Type: "text"},
		}
	case TabAppointments:
		patients := make([]Option, 0, len(snap.Patients)+1)
		patients = append(patients, Option{Value: "", Label: "Select patient"})
		for _, p := range snap.Patients {
			patients = append(patients, Option{Value: p.ID, Label: p.Name})
		}
		depts := make([]Option, 0, len(snap.Departments)+1)
		depts = append(depts, Option{Value: "", Label: "Select department"})
		for _, d := range snap.Departments {
			depts = append(depts, Option{Value: d.ID, Label: d.Name})
		}
		doctors := make([]Option, 0, len(snap.Doctors)+1)
		doctors = append(doctors, Option{Value: "", Label: "Unassigned"})
		for _, d := range snap.Doctors {
			doctors = append(doctors, Option{Value: d.ID, Label: d.Name})
		}
		specs := []FieldSpec{
			{Name: "patient", Label: "Patient", Options: patients},
			{Name: "dept", Label: "Department", Options: depts},
			{Name: "doctor", Label: "Doctor", Options: doctors},
			{Name: "date", Label: "Date", Type: "date"},
			{Name: "time", Label: "Time", Type: "time"},
			{Name: "status", Label: "Status", Options: []Option{
				{Value: types.StatusScheduled, Label: "Scheduled"},
				{Value: types.StatusCompleted, Label: "Completed"},
				{Value: types.StatusCancelled, Label: "Cancelled"},
			}},
			{Name: "rsv", Label: "Reason", Type: "text"},
		}
		if role == types.RoleDoctor {
			specs = append(specs, FieldSpec{Name: "notes", Label: "Notes", Type: "text"})
		}
		return specs
	}
	return nil
}

// columns returns the active tab's table header
func columns(tab string) []string {
	switch tab {
	case TabPatients:
		return []string{"Name", "Email", "Phone", "Age", "Gender", "Blood Group", "Registered"}
	case TabDoctors:
		return []string{"Name", "Email", "Specialization", "Department", "Experience", "Qualification", "Status"}
	case TabDepartments:
		return []string{"Name", "Description", "Doctors", "Appointments"}
	case TabAppointments:
		return []string{"Patient", "Doctor", "Department", "Date", "Time", "Status", "Reason"}
	}
	return nil
}

// rows renders the active tab's table from the loaded snapshot,
// resolving foreign keys to display names and applying the search
// filter
func rows(tab string, snap records.Snapshot, search string) []Row {
	search = strings.ToLower(strings.TrimSpace(search))
	match := func(values ...string) bool {
		if search == "" {
			return true
		}
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), search) {
				return true
			}
		}
		return false
	}

	var out []Row
	switch tab {
	case TabPatients:
		for _, p := range snap.Patients {
			if !match(p.Name, p.Email, p.Phone) {
				continue
			}
			out = append(out, Row{ID: p.ID, Cells: []string{
				p.Name, p.Email, p.Phone, strconv.Itoa(p.Age), p.Gender, p.BloodGroup, p.CreatedAt,
			}})
		}
	case TabDoctors:
		for _, d := range snap.Doctors {
			dept := records.ResolveDepartmentName(snap.Departments, d.Department)
			if !match(d.Name, d.Email, d.Specialization, dept) {
				continue
			}
			out = append(out, Row{ID: d.ID, Cells: []string{
				d.Name, d.Email, d.Specialization, dept, d.Experience, d.Qualification, d.Status,
			}})
		}
	case TabDepartments:
		for _, d := range snap.Departments {
			if !match(d.Name, d.Description) {
				continue
			}
			out = append(out, Row{ID: d.ID, Cells: []string{
				d.Name, d.Description, strconv.Itoa(d.DoctorCount), strconv.Itoa(d.AppointmentCount),
			}})
		}
	case TabAppointments:
		for _, a := range snap.Appointments {
			patient := records.ResolvePatientName(snap.Patients, a.Patient)
			doctor := records.ResolveDoctorName(snap.Doctors, a.Doctor)
			dept := records.ResolveDepartmentName(snap.Departments, a.Department)
			if !match(patient, doctor, dept, a.Status, a.Reason) {
				continue
			}
			out = append(out, Row{ID: a.ID, Cells: []string{
				patient, doctor, dept, a.Date, a.Time, a.Status, a.Reason,
			}})
		}
	}
	return out
}

// editFields extracts an entity's editable fields as form drafts
func editFields(tab, id string, snap records.Snapshot) (map[string]string, bool) {
	switch tab {
	case TabPatients:
		for _, p := range snap.Patients {
			if p.ID == id {
				return map[string]string{
					"name":            p.Name,
					"email":           p.Email,
					"phno":            p.Phone,
					"age":             strconv.Itoa(p.Age),
					"gender":          p.Gender,
					"bg":              p.BloodGroup,
					"address":         p.Address,
					"emerno":          p.EmergencyContact,
					"medical_history": p.MedicalHistory,
				}, true
			}
		}
	case TabDoctors:
		for _, d := range snap.Doctors {
			if d.ID == id {
				return map[string]string{
					"name":           d.Name,
					"email":          d.Email,
					"phone":          d.Phone,
					"specialization": d.Specialization,
					"department":     d.Department.ID,
					"exp":            d.Experience,
					"qual":           d.Qualification,
					"status":         d.Status,
				}, true
			}
		}
	case TabDepartments:
		for _, d := range snap.Departments {
			if d.ID == id {
				return map[string]string{
					"dept":        d.Name,
					"description": d.Description,
				}, true
			}
		}
	case TabAppointments:
		for _, a := range snap.Appointments {
			if a.ID == id {
				return map[string]string{
					"patient": a.Patient.ID,
					"doctor":  a.Doctor.ID,
					"dept":    a.Department.ID,
					"date":    a.Date,
					"time":    a.Time,
					"status":  a.Status,
					"rsv":     a.Reason,
					"notes":   a.Notes,
				}, true
			}
		}
	}
	return nil, false
}

// formDefaults returns the create-form defaults per tab
func formDefaults(tab string) map[string]string {
	switch tab {
	case TabPatients:
		return map[string]string{"gender": "Male", "bg": "A+"}
	case TabDoctors:
		return map[string]string{"status": types.DoctorStatusActive}
	case TabAppointments:
		return map[string]string{"status": types.StatusScheduled}
	}
	return map[string]string{}
}
