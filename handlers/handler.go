package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"task-management/backend/errs"
	"task-management/backend/logging"
	"task-management/backend/middleware"
	"task-management/backend/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	adminOnly       = []string{models.AuthorityAdmin}
	teamMembers     = []string{models.AuthorityTeamMember}
	groupManagers   = []string{models.AuthorityProjectGroupManager}
	projectManagers = []string{models.AuthorityProjectGroupManager, models.AuthorityProjectManager, models.AuthorityTeamLeader}
	userTaskReaders = []string{models.AuthorityTeamMember, models.AuthorityAdmin}
)

func checkRole(r *http.Request, allowedRoles []string) error {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return fmt.Errorf("claims are missing from request context")
	}
	if allowedRoles == nil || claims.HasRole(allowedRoles...) {
		return nil
	}
	return fmt.Errorf("access forbidden: user %s does not have the required role", claims.Username)
}

// authorize writes 403 and returns false when the caller lacks every allowed role.
func authorize(w http.ResponseWriter, r *http.Request, allowedRoles []string) bool {
	if err := checkRole(r, allowedRoles); err != nil {
		logging.Logger.Warnf("Event ID: ACCESS_FORBIDDEN, Description: %s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "Access forbidden: insufficient permissions", http.StatusForbidden)
		return false
	}
	return true
}

func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s %q: %w", name, mux.Vars(r)[name], errs.ErrInvalidID)
	}
	return id, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logging.Logger.Warnf("Event ID: INVALID_PAYLOAD, Description: Invalid request payload for %s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_FAILED, Description: Failed to encode response: %v", err)
	}
}

func statusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindStateConflict:
		return http.StatusConflict
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code. Unclassified errors are logged in
// full but reported to the client without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logging.Logger.Errorf("Event ID: REQUEST_FAILED, Description: %s %s failed: %v", r.Method, r.URL.Path, err)
		if errs.KindOf(err) == errs.KindUnknown {
			message = "Internal server error"
		}
	} else {
		logging.Logger.Warnf("Event ID: REQUEST_REJECTED, Description: %s %s rejected with %d: %v", r.Method, r.URL.Path, status, err)
	}
	http.Error(w, message, status)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
