package types

import (
	"bytes"
	"encoding/json"
)

// UserRole represents the two console roles
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleDoctor UserRole = "doctor"
)

// Session holds the client-side authentication state. The token is
// opaque; the server is the only authority on its validity.
type Session struct {
	IsAuthenticated bool     `json:"isAuthenticated"`
	Token           string   `json:"token,omitempty"`
	Email           string   `json:"email"`
	Role            UserRole `json:"role"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginUser is the user record optionally embedded in a login response
type LoginUser struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// LoginResponse is the body returned by POST /auth/login
type LoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Token   string     `json:"token"`
	Role    string     `json:"role"`
	User    *LoginUser `json:"user"`
}

// Ref is a foreign key as the server sends it: a bare id string, a
// numeric id, or an embedded object carrying the id and a display
// name. It marshals back as the bare id because the client never
// invents or round-trips embedded records.
type Ref struct {
	ID   string
	Name string
}

// UnmarshalJSON accepts every id shape observed from the server.
// Unknown shapes leave the zero Ref rather than failing the record.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.ID = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		r.ID = n.String()
		return nil
	}

	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
		Dept string `json:"dept"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		r.ID = obj.ID
		r.Name = obj.Name
		if r.Name == "" {
			r.Name = obj.Dept
		}
	}
	return nil
}

// MarshalJSON writes the bare id, or null when unset
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// IsZero reports whether the reference is absent
func (r Ref) IsZero() bool {
	return r.ID == ""
}

// Patient is a read-through copy of a server patient record
type Patient struct {
	ID               string `json:"_id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phno"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Address          string `json:"address"`
	BloodGroup       string `json:"bg"`
	EmergencyContact string `json:"emerno"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

// DoctorStatus values accepted by the server
const (
	DoctorStatusActive   = "Active"
	DoctorStatusInactive = "Inactive"
)

// Doctor is a read-through copy of a server doctor record
type Doctor struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	Department     Ref    `json:"department"`
	Experience     string `json:"exp"`
	Qualification  string `json:"qual"`
	Status         string `json:"status"`
}

// Department is a read-through copy of a server department record.
// The counters are client-computed on every load and never persisted.
type Department struct {
	ID               string `json:"_id"`
	Name             string `json:"dept"`
	Description      string `json:"description"`
	DoctorCount      int    `json:"-"`
	AppointmentCount int    `json:"-"`
}

// AppointmentStatus values accepted by the server
const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment is a read-through copy of a server appointment record.
// The doctor reference is nullable while the appointment is
// unassigned.
type Appointment struct {
	ID         string `json:"_id"`
	Patient    Ref    `json:"patient"`
	Doctor     Ref    `json:"doctor"`
	Department Ref    `json:"dept"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	Reason     string `json:"rsv"`
	Notes      string `json:"notes,omitempty"`
}
