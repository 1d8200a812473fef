package forms

// Per-entity rule sets. Validation is declarative and per field; the
// only cross-cutting checks are the appointment date floor and the
// department description length.

// PatientRules validates the patient form
func PatientRules() []Rule {
	return []Rule{
		{Field: "name", Check: Required("Name is required")},
		{Field: "email", Check: Required("Email is required")},
		{Field: "email", Check: Email("Please enter a valid email address")},
		{Field: "phno", Check: Required("Phone number is required")},
		{Field: "phno", Check: Phone("Please enter a valid phone number")},
		{Field: "age", Check: IntRange(1, 120, "Please enter a valid age (1-120)")},
		{Field: "address", Check: Required("Address is required")},
		{Field: "emerno", Check: Required("Emergency contact is required")},
		{Field: "emerno", Check: Phone("Please enter a valid emergency contact number")},
	}
}

// DoctorRules validates the doctor form
func DoctorRules() []Rule {
	return []Rule{
		{Field: "name", Check: Required("Name is required")},
		{Field: "email", Check: Required("Email is required")},
		{Field: "email", Check: Email("Please enter a valid email address")},
		{Field: "phone", Check: Required("Phone number is required")},
		{Field: "phone", Check: Phone("Please enter a valid phone number")},
		{Field: "specialization", Check: Required("Specialization is required")},
		{Field: "department", Check: Required("Department is required")},
		{Field: "exp", Check: Required("Experience is required")},
		{Field: "qual", Check: Required("Qualification is required")},
	}
}

// DepartmentRules validates the department form
func DepartmentRules() []Rule {
	return []Rule{
		{Field: "dept", Check: Required("Department name is required")},
		{Field: "description", Check: Required("Description is required")},
		{Field: "description", Check: MinLen(10, "Description must be at least 10 characters")},
	}
}

// AppointmentRules validates the appointment form
func AppointmentRules() []Rule {
	return []Rule{
		{Field: "patient", Check: Required("Patient is required")},
		{Field: "dept", Check: Required("Department is required")},
		{Field: "date", Check: Required("Date is required")},
		{Field: "date", Check: NotPastDate("Date cannot be in the past")},
		{Field: "time", Check: Required("Time is required")},
		{Field: "rsv", Check: Required("Reason is required")},
	}
}
