package console

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medicore/hms-console/internal/forms"
	"github.com/medicore/hms-console/internal/records"
	"github.com/medicore/hms-console/pkg/config"
	"github.com/medicore/hms-console/pkg/interfaces"
	"github.com/medicore/hms-console/pkg/logger"
	"github.com/medicore/hms-console/pkg/monitoring"
)

// Server hosts the console's two pages: the login screen and the
// role-gated dashboard. Session state decides which page is
// reachable, and a single selected-tab value decides which management
// screen is mounted.
type Server struct {
	cfg     *config.Config
	router  *mux.Router
	server  *http.Server
	store   interfaces.SessionStore
	auth    interfaces.Authenticator
	loaders *records.Registry
	gateway interfaces.Gateway
	health  *monitoring.HealthManager
	logger  *logger.Logger

	mu         sync.Mutex
	snap       records.Snapshot
	loginError string
	forms      map[string]*forms.Controller
}

// NewServer creates the console server
func NewServer(
	cfg *config.Config,
	store interfaces.SessionStore,
	auth interfaces.Authenticator,
	loaders *records.Registry,
	gateway interfaces.Gateway,
	log *logger.Logger,
) *Server {
	s := &Server{
		cfg:     cfg,
		router:  mux.NewRouter(),
		store:   store,
		auth:    auth,
		loaders: loaders,
		gateway: gateway,
		health:  monitoring.NewHealthManager("hms-console"),
		logger:  log,
	}

	// The console serves pages regardless; the health report tells
	// probes whether the records API is reachable. The probe bypasses
	// the gateway so a 401 on it can never force a logout.
	probe := &http.Client{Timeout: 5 * time.Second}
	s.health.RegisterChecker("records_api", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.API.BaseURL, nil)
		if err != nil {
			return err
		}
		resp, err := probe.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		return nil
	})

	s.forms = map[string]*forms.Controller{
		TabPatients:     forms.NewController(forms.PatientRules(), s.submitPatient, nil),
		TabDoctors:      forms.NewController(forms.DoctorRules(), s.submitDoctor, nil),
		TabDepartments:  forms.NewController(forms.DepartmentRules(), s.submitDepartment, nil),
		TabAppointments: forms.NewController(forms.AppointmentRules(), s.submitAppointment, nil),
	}

	// A forced logout from any in-flight request must leave no stale
	// data behind for the next user
	store.OnInvalidate(s.clearCache)

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	return s
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the console server
func (s *Server) Start() error {
	s.logger.WithComponent("console").WithField("addr", s.server.Addr).Info("Starting console server")
	return s.server.ListenAndServe()
}

// Stop stops the console server gracefully
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.logger.WithComponent("console").Info("Stopping console server")
	return s.server.Shutdown(ctx)
}

// setupRoutes sets up the two pages, the form actions and the
// operational endpoints
func (s *Server) setupRoutes() {
	s.router.Use(monitoring.Middleware(s.logger))

	s.router.HandleFunc("/", s.handleLoginPage).Methods(http.MethodGet)
	s.router.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	s.router.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	if s.cfg.Monitoring.Enabled {
		s.router.Handle(s.cfg.Monitoring.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
		s.router.Handle(s.cfg.Monitoring.HealthPath, s.health.Handler()).Methods(http.MethodGet)
	}

	dashboard := s.router.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(s.requireSession)
	dashboard.HandleFunc("", s.handleDashboard).Methods(http.MethodGet)
	dashboard.HandleFunc("/{tab}/new", s.handleFormNew).Methods(http.MethodPost)
	dashboard.HandleFunc("/{tab}/edit", s.handleFormEdit).Methods(http.MethodPost)
	dashboard.HandleFunc("/{tab}/cancel", s.handleFormCancel).Methods(http.MethodPost)
	dashboard.HandleFunc("/{tab}/submit", s.handleFormSubmit).Methods(http.MethodPost)
	dashboard.HandleFunc("/{tab}/delete", s.handleDelete).Methods(http.MethodPost)
}

// requireSession gates the dashboard on an authenticated session
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.store.Current().IsAuthenticated {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clearCache drops every cached list and discards open drafts. Runs
// on logout so a newly logged-in user never sees the previous user's
// data.
func (s *Server) clearCache() {
	s.mu.Lock()
	s.snap = records.Snapshot{}
	controllers := make([]*forms.Controller, 0, len(s.forms))
	for _, c := range s.forms {
		controllers = append(controllers, c)
	}
	s.mu.Unlock()

	for _, c := range controllers {
		c.Cancel()
	}
}
