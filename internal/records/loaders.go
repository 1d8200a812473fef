package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/medicore/hms-console/pkg/interfaces"
	"github.com/medicore/hms-console/pkg/logger"
	"github.com/medicore/hms-console/pkg/types"
)

// Registry bundles the per-entity list loaders. Each loader fetches
// one collection through the gateway and normalizes the response into
// a flat ordered slice; loaders are independent, so a failure loading
// one collection never blocks another.
type Registry struct {
	gateway interfaces.Gateway
	logger  *logger.Logger
}

// NewRegistry creates the loader registry
func NewRegistry(gateway interfaces.Gateway, log *logger.Logger) *Registry {
	return &Registry{
		gateway: gateway,
		logger:  log,
	}
}

// Patients loads the patient collection
func (r *Registry) Patients(ctx context.Context) ([]types.Patient, error) {
	raw, err := r.gateway.Request(ctx, http.MethodGet, "/patients", nil)
	if err != nil {
		return nil, err
	}

	items := NormalizeList(raw)
	out := make([]types.Patient, 0, len(items))
	for _, item := range items {
		var p types.Patient
		if err := json.Unmarshal(item, &p); err != nil {
			r.logger.WithComponent("records").WithError(err).Warn("Skipping malformed patient record")
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Doctors loads the doctor collection
func (r *Registry) Doctors(ctx context.Context) ([]types.Doctor, error) {
	return r.doctors(ctx, "/doctors")
}

// DoctorsByDepartment loads only the doctors assigned to one
// department, for the appointment form's doctor picker
func (r *Registry) DoctorsByDepartment(ctx context.Context, departmentID string) ([]types.Doctor, error) {
	if departmentID == "" {
		return []types.Doctor{}, nil
	}
	return r.doctors(ctx, "/doctors?departmentId="+url.QueryEscape(departmentID))
}

func (r *Registry) doctors(ctx context.Context, path string) ([]types.Doctor, error) {
	raw, err := r.gateway.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	items := NormalizeList(raw)
	out := make([]types.Doctor, 0, len(items))
	for _, item := range items {
		var d types.Doctor
		if err := json.Unmarshal(item, &d); err != nil {
			r.logger.WithComponent("records").WithError(err).Warn("Skipping malformed doctor record")
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// Departments loads the department collection. Counters are not
// populated here; see CountByDepartment.
func (r *Registry) Departments(ctx context.Context) ([]types.Department, error) {
	raw, err := r.gateway.Request(ctx, http.MethodGet, "/departments", nil)
	if err != nil {
		return nil, err
	}

	items := NormalizeList(raw)
	out := make([]types.Department, 0, len(items))
	for _, item := range items {
		var d types.Department
		if err := json.Unmarshal(item, &d); err != nil {
			r.logger.WithComponent("records").WithError(err).Warn("Skipping malformed department record")
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// Appointments loads the appointment collection
func (r *Registry) Appointments(ctx context.Context) ([]types.Appointment, error) {
	raw, err := r.gateway.Request(ctx, http.MethodGet, "/appointments", nil)
	if err != nil {
		return nil, err
	}

	items := NormalizeList(raw)
	out := make([]types.Appointment, 0, len(items))
	for _, item := range items {
		var a types.Appointment
		if err := json.Unmarshal(item, &a); err != nil {
			r.logger.WithComponent("records").WithError(err).Warn("Skipping malformed appointment record")
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// Snapshot holds the result of loading all four collections. Each
// collection carries its own error; partial completion is normal and
// the screens render whatever arrived.
type Snapshot struct {
	Patients        []types.Patient
	PatientsErr     error
	Doctors         []types.Doctor
	DoctorsErr      error
	Departments     []types.Department
	DepartmentsErr  error
	Appointments    []types.Appointment
	AppointmentsErr error
}

// LoadAll fetches the four collections concurrently. The loads are
// independent and unordered with respect to each other; department
// counters are recomputed from whatever doctors and appointments
// arrived.
func (r *Registry) LoadAll(ctx context.Context) Snapshot {
	var snap Snapshot
	var wg sync.WaitGroup

	wg.Add(4)
	go func() {
		defer wg.Done()
		snap.Patients, snap.PatientsErr = r.Patients(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Doctors, snap.DoctorsErr = r.Doctors(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Departments, snap.DepartmentsErr = r.Departments(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Appointments, snap.AppointmentsErr = r.Appointments(ctx)
	}()
	wg.Wait()

	CountByDepartment(snap.Departments, snap.Doctors, snap.Appointments)
	return snap
}
