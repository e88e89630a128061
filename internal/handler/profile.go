package handler

import (
	"net/http"

	"github.com/pkordes/tzevents/backend/internal/domain"
)

// Profile is the wire representation of domain.Profile.
type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// CreateProfileRequest is the body of POST /profiles.
type CreateProfileRequest struct {
	Name string `json:"name"`
}

// CreateProfile handles POST /profiles.
func (s *Server) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var body CreateProfileRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.profiles.Create(r.Context(), body.Name)
	if err != nil {
		s.writeServiceError(w, r, err, "profile not found")
		return
	}
	writeJSON(w, http.StatusCreated, profileToResponse(created))
}

// ListProfiles handles GET /profiles.
func (s *Server) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.profiles.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "profile not found")
		return
	}

	out := make([]Profile, len(profiles))
	for i, p := range profiles {
		out[i] = profileToResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func profileToResponse(p domain.Profile) Profile {
	return Profile{ID: p.ID, Name: p.Name, Timezone: p.Timezone}
}
