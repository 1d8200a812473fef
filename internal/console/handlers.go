package console

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/medicore/hms-console/internal/forms"
	"github.com/medicore/hms-console/internal/records"
	"github.com/medicore/hms-console/pkg/types"
)

type loginPageData struct {
	Email string
	Error string
}

type dashboardData struct {
	Email      string
	Role       types.UserRole
	Tab        string
	Tabs       []string
	Search     string
	ListError  string
	Form       forms.View
	FormFields []FieldSpec
	Columns    []string
	Rows       []Row
	CanDelete  bool
}

// handleLoginPage renders the login screen; an authenticated session
// goes straight to the dashboard
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.store.Current().IsAuthenticated {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	s.mu.Lock()
	data := loginPageData{Error: s.loginError}
	s.loginError = ""
	s.mu.Unlock()

	if err := loginTemplate.Execute(w, data); err != nil {
		s.logger.WithComponent("console").WithError(err).Error("Failed to render login page")
	}
}

// handleLogin validates the credentials locally, then authenticates
// against the API. Field-level failures never reach the network.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	role := types.UserRole(r.PostFormValue("role"))
	if role != types.RoleAdmin && role != types.RoleDoctor {
		role = types.RoleDoctor
	}

	if msg := validateLoginFields(email, password); msg != "" {
		s.setLoginError(msg)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := s.auth.Login(r.Context(), email, password, role); err != nil {
		s.setLoginError(userMessage(err, "Login failed. Please try again."))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout ends the session and clears all cached data
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDashboard loads all four collections concurrently and renders
// the selected management screen. Collections fail independently; the
// active tab shows its own error with a retry action and renders
// whatever else arrived.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Current()

	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = TabPatients
	}
	if !tabAllowed(sess.Role, tab) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	snap := s.loaders.LoadAll(r.Context())
	if sessionEnded(snap) || !s.store.Current().IsAuthenticated {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	form := s.forms[tab].State()

	// The appointment form's doctor picker narrows to the chosen
	// department, falling back to the full doctor list when the
	// filtered load fails
	pick := snap
	if tab == TabAppointments && form.Phase == forms.PhaseOpen {
		if deptID := form.Fields["dept"]; deptID != "" {
			if filtered, err := s.loaders.DoctorsByDepartment(r.Context(), deptID); err == nil {
				pick.Doctors = filtered
			}
		}
	}

	search := r.URL.Query().Get("q")
	data := dashboardData{
		Email:      sess.Email,
		Role:       sess.Role,
		Tab:        tab,
		Tabs:       tabsForRole(sess.Role),
		Search:     search,
		ListError:  tabError(tab, snap),
		Form:       form,
		FormFields: fieldSpecs(tab, pick, sess.Role),
		Columns:    columns(tab),
		Rows:       rows(tab, snap, search),
		CanDelete:  canDelete(sess.Role, tab),
	}

	if err := dashboardTemplate.Execute(w, data); err != nil {
		s.logger.WithComponent("console").WithError(err).Error("Failed to render dashboard")
	}
}

// handleFormNew opens the create form for the active tab
func (s *Server) handleFormNew(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.activeTab(w, r)
	if !ok {
		return
	}
	s.forms[tab].OpenForCreate(formDefaults(tab))
	s.redirectToTab(w, r, tab)
}

// handleFormEdit opens the edit form with a copy of the entity's
// fields from the cached snapshot
func (s *Server) handleFormEdit(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.activeTab(w, r)
	if !ok {
		return
	}

	id := r.PostFormValue("id")
	s.mu.Lock()
	snap := s.snap
	s.mu.Unlock()

	fields, found := editFields(tab, id, snap)
	if !found {
		// Record vanished between render and click; the re-fetch on
		// redirect shows the current state
		s.redirectToTab(w, r, tab)
		return
	}

	s.forms[tab].OpenForEdit(id, fields)
	s.redirectToTab(w, r, tab)
}

// handleFormCancel discards the draft; no write is ever issued
func (s *Server) handleFormCancel(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.activeTab(w, r)
	if !ok {
		return
	}
	s.forms[tab].Cancel()
	s.redirectToTab(w, r, tab)
}

// handleFormSubmit applies the posted values to the draft and submits
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.activeTab(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	controller := s.forms[tab]
	for name := range r.PostForm {
		controller.ChangeField(name, r.PostFormValue(name))
	}

	if err := controller.Submit(r.Context()); err != nil {
		if errors.Is(err, forms.ErrNotOpen) {
			s.redirectToTab(w, r, tab)
			return
		}
		if types.IsUnauthorized(err) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	// Validation and server failures keep the form open; the redirect
	// re-renders it with errors. Success re-fetches the list.
	s.redirectToTab(w, r, tab)
}

// handleDelete removes a record, admin only and only where the API
// has a delete endpoint
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	tab, ok := s.activeTab(w, r)
	if !ok {
		return
	}

	sess := s.store.Current()
	if !canDelete(sess.Role, tab) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	id := r.PostFormValue("id")
	if id == "" {
		s.redirectToTab(w, r, tab)
		return
	}

	_, err := s.gateway.Request(r.Context(), http.MethodDelete, "/"+tab+"/"+url.PathEscape(id), nil)
	if err != nil {
		if types.IsUnauthorized(err) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.logger.WithComponent("console").WithError(err).Warn("Delete failed")
	} else {
		s.logger.Audit(sess.Email, "delete", tab, true, map[string]interface{}{"id": id})
	}
	s.redirectToTab(w, r, tab)
}

// activeTab validates the tab route variable against the session role
func (s *Server) activeTab(w http.ResponseWriter, r *http.Request) (string, bool) {
	tab := mux.Vars(r)["tab"]
	if _, known := s.forms[tab]; !known || !tabAllowed(s.store.Current().Role, tab) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return "", false
	}
	return tab, true
}

func (s *Server) redirectToTab(w http.ResponseWriter, r *http.Request, tab string) {
	http.Redirect(w, r, "/dashboard?tab="+url.QueryEscape(tab), http.StatusSeeOther)
}

func (s *Server) setLoginError(msg string) {
	s.mu.Lock()
	s.loginError = msg
	s.mu.Unlock()
}

// sessionEnded reports whether any collection load came back
// unauthorized, which means the session was force-cleared mid-flight
func sessionEnded(snap records.Snapshot) bool {
	for _, err := range []error{snap.PatientsErr, snap.DoctorsErr, snap.DepartmentsErr, snap.AppointmentsErr} {
		if types.IsUnauthorized(err) {
			return true
		}
	}
	return false
}

// tabError returns the active tab's own load failure, if any
func tabError(tab string, snap records.Snapshot) string {
	var err error
	switch tab {
	case TabPatients:
		err = snap.PatientsErr
	case TabDoctors:
		err = snap.DoctorsErr
	case TabDepartments:
		err = snap.DepartmentsErr
	case TabAppointments:
		err = snap.AppointmentsErr
	}
	if err == nil {
		return ""
	}
	return userMessage(err, "Failed to load records.")
}

// validateLoginFields mirrors the login form's local checks
func validateLoginFields(email, password string) string {
	if email == "" {
		return "Email is required"
	}
	if check := forms.Email("Please enter a valid email address")(email); check != "" {
		return check
	}
	if password == "" {
		return "Password is required"
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters long"
	}
	return ""
}

// userMessage extracts a display message from a classified error
func userMessage(err error, fallback string) string {
	var ce *types.ConsoleError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
