package console

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/medicore/hms-console/pkg/types"
)

// Submit functions for the per-tab form controllers. Each builds the
// wire payload from the validated draft and issues the create
// (identity absent) or update (identity present) through the gateway.

func (s *Server) submitPatient(ctx context.Context, entityID string, fields map[string]string) error {
	age, _ := strconv.Atoi(strings.TrimSpace(fields["age"]))
	payload := map[string]interface{}{
		"name":    strings.TrimSpace(fields["name"]),
		"email":   strings.TrimSpace(fields["email"]),
		"phno":    strings.TrimSpace(fields["phno"]),
		"age":     age,
		"gender":  strings.ToLower(fields["gender"]),
		"bg":      fields["bg"],
		"address": strings.TrimSpace(fields["address"]),
		"emerno":  strings.TrimSpace(fields["emerno"]),
	}
	if history := strings.TrimSpace(fields["medical_history"]); history != "" {
		payload["medical_history"] = history
	}

	if entityID == "" {
		_, err := s.gateway.Request(ctx, http.MethodPost, "/patients/patient", payload)
		return err
	}
	_, err := s.gateway.Request(ctx, http.MethodPut, "/patients/"+entityID, payload)
	return err
}

func (s *Server) submitDoctor(ctx context.Context, entityID string, fields map[string]string) error {
	payload := map[string]interface{}{
		"name":           strings.TrimSpace(fields["name"]),
		"email":          strings.TrimSpace(fields["email"]),
		"phone":          strings.TrimSpace(fields["phone"]),
		"specialization": strings.TrimSpace(fields["specialization"]),
		"department":     fields["department"],
		"exp":            strings.TrimSpace(fields["exp"]),
		"qual":           strings.TrimSpace(fields["qual"]),
		"status":         fields["status"],
	}

	if entityID == "" {
		_, err := s.gateway.Request(ctx, http.MethodPost, "/doctors", payload)
		return err
	}
	_, err := s.gateway.Request(ctx, http.MethodPut, "/doctors/"+entityID, payload)
	return err
}

func (s *Server) submitDepartment(ctx context.Context, entityID string, fields map[string]string) error {
	payload := map[string]interface{}{
		"dept":        strings.TrimSpace(fields["dept"]),
		"description": strings.TrimSpace(fields["description"]),
	}

	if entityID == "" {
		_, err := s.gateway.Request(ctx, http.MethodPost, "/departments", payload)
		return err
	}
	_, err := s.gateway.Request(ctx, http.MethodPut, "/departments/"+entityID, payload)
	return err
}

func (s *Server) submitAppointment(ctx context.Context, entityID string, fields map[string]string) error {
	payload := map[string]interface{}{
		"patient": fields["patient"],
		"dept":    fields["dept"],
		"date":    fields["date"],
		"time":    fields["time"],
		"status":  fields["status"],
		"rsv":     strings.TrimSpace(fields["rsv"]),
	}
	if doctor := fields["doctor"]; doctor != "" {
		payload["doctor"] = doctor
	}
	// Notes are writable by the doctor role only; an admin submit
	// simply omits the field so the server keeps whatever is stored
	if s.store.Current().Role == types.RoleDoctor {
		payload["notes"] = strings.TrimSpace(fields["notes"])
	}

	if entityID == "" {
		_, err := s.gateway.Request(ctx, http.MethodPost, "/appointments", payload)
		return err
	}
	_, err := s.gateway.Request(ctx, http.MethodPut, "/appointments/"+entityID, payload)
	return err
}
