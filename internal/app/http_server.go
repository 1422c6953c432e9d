package app

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frudas24/astralgesture/internal/config"
	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/frudas24/astralgesture/internal/player"
	"github.com/frudas24/astralgesture/internal/telemetry"
)

// defaultRecent is how many telemetry records /api/telemetry returns without ?n.
const defaultRecent = 50

// RegisterRoutes wires API and websocket handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/settings", a.handleSettings)
	mux.HandleFunc("/api/telemetry", a.handleTelemetry)
	mux.Handle("/ws/control", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)
}

type loginRequest struct {
	Password string `json:"password"`
}

type geometryResponse struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type statsResponse struct {
	Sessions   uint64 `json:"sessions"`
	DeadZone   uint64 `json:"deadZone"`
	Violations uint64 `json:"violations"`
	Aborted    uint64 `json:"aborted"`
	Cancelled  uint64 `json:"cancelled"`
}

type stateResponse struct {
	Authenticated bool             `json:"authenticated"`
	InputEnabled  bool             `json:"inputEnabled"`
	Connected     bool             `json:"connected"`
	Geometry      geometryResponse `json:"geometry"`
	Active        gesture.Kind     `json:"active,omitempty"`
	Player        player.Snapshot  `json:"player"`
	Stats         statsResponse    `json:"stats"`
}

type settingsRequest struct {
	Reset    bool         `json:"reset"`
	Settings *config.File `json:"settings"`
}

type settingsResponse struct {
	Applied  bool        `json:"applied"`
	Saved    bool        `json:"saved"`
	Settings config.File `json:"settings"`
}

type telemetryResponse struct {
	Stats  telemetry.Stats    `json:"stats"`
	Recent []telemetry.Record `json:"recent"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	writeJSON(w, map[string]bool{"ok": true})
}

// handleState returns the viewer session, the active gesture, and the player state.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	snap := a.session.Snapshot()
	stats := a.engine.Stats()
	writeJSON(w, stateResponse{
		Authenticated: snap.Authenticated,
		InputEnabled:  snap.InputEnabled,
		Connected:     snap.Connected,
		Geometry:      geometryResponse{Width: snap.Geometry.Width, Height: snap.Geometry.Height},
		Active:        a.engine.Active(),
		Player:        a.player.Snapshot(),
		Stats: statsResponse{
			Sessions:   stats.Sessions,
			DeadZone:   stats.DeadZone,
			Violations: stats.Violations,
			Aborted:    stats.Aborted,
			Cancelled:  stats.Cancelled,
		},
	})
}

// handleSettings reads or replaces the gesture settings.
//
// POST bodies carry a settings document (fields left out keep their current
// value) or {"reset":true} to return to the settings loaded at startup.
func (a *App) handleSettings(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, settingsResponse{Settings: a.SettingsFile()})
		return
	case http.MethodPost:
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	current := a.SettingsFile().Clone()
	req := settingsRequest{Settings: &current}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	var next config.File
	switch {
	case req.Reset:
		next = a.defaultFile.Clone()
	case req.Settings != nil:
		next = *req.Settings
	default:
		http.Error(w, "settings are required", http.StatusBadRequest)
		return
	}
	settings, err := next.ToSettings()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := a.ApplySettings(settings); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	saved := false
	if a.cfg.SettingsPath != "" {
		if err := config.WriteFile(a.cfg.SettingsPath, next); err != nil {
			a.log.WithError(err).Warn("settings: save failed")
		} else {
			saved = true
		}
	}
	a.log.WithField("reset", req.Reset).Info("settings: applied")
	writeJSON(w, settingsResponse{Applied: true, Saved: saved, Settings: a.SettingsFile()})
}

// handleTelemetry returns aggregate gesture stats and the most recent records.
func (a *App) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	n := defaultRecent
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			http.Error(w, "n must be a non-negative integer", http.StatusBadRequest)
			return
		}
		n = v
	}
	writeJSON(w, telemetryResponse{
		Stats:  a.telemetry.Stats(),
		Recent: a.telemetry.Recent(n),
	})
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
