package handler

import (
	"net/http"

	"github.com/pkordes/tzevents/backend/internal/timezone"
)

// ListTimezones handles GET /timezones.
// Returns the selectable labels in display order with the zone each maps to.
func (s *Server) ListTimezones(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, timezone.Zones())
}
