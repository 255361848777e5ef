package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RossFW/botc/internal/analytics"
	"github.com/RossFW/botc/internal/api"
	"github.com/RossFW/botc/internal/repository"
	"github.com/RossFW/botc/internal/roster"
	"github.com/RossFW/botc/internal/service"

	"github.com/rs/zerolog"
)

// TrackerServer exposes the game log mutations and every projection
// over JSON HTTP.
type TrackerServer struct {
	matchSvc  *service.MatchService
	statsSvc  *service.StatsService
	syncSvc   *service.SyncService
	revisions *repository.RevisionRepository
	logger    zerolog.Logger
}

func NewTrackerServer(
	matchSvc *service.MatchService,
	statsSvc *service.StatsService,
	syncSvc *service.SyncService,
	revisions *repository.RevisionRepository,
	logger zerolog.Logger,
) *TrackerServer {
	return &TrackerServer{
		matchSvc:  matchSvc,
		statsSvc:  statsSvc,
		syncSvc:   syncSvc,
		revisions: revisions,
		logger:    logger,
	}
}

func (s *TrackerServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /matches", s.handleSubmit)
	mux.HandleFunc("PUT /matches/{id}", s.handleEdit)
	mux.HandleFunc("DELETE /matches/{id}", s.handleDelete)
	mux.HandleFunc("GET /matches", s.handleGameLog)

	mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /players/{name}", s.handlePlayer)
	mux.HandleFunc("GET /players/{name}/delta", s.handleDelta)
	mux.HandleFunc("GET /players/{name}/breakdown", s.handleBreakdown)

	mux.HandleFunc("GET /analytics/scripts", s.handleScripts)
	mux.HandleFunc("GET /analytics/roles", s.handleRoles)
	mux.HandleFunc("GET /analytics/categories", s.handleCategories)
	mux.HandleFunc("GET /analytics/storytellers", s.handleStorytellers)
	mux.HandleFunc("GET /analytics/versus", s.handleVersus)

	mux.HandleFunc("GET /revisions", s.handleRevisions)
	mux.HandleFunc("POST /sync/import", s.handleImport)
	mux.HandleFunc("POST /sync/export", s.handleExport)

	return mux
}

// submissionRequest mirrors the submission form: two roster text
// blocks plus 1/2 selectors for the Evil team and the winner.
type submissionRequest struct {
	Team1       string `json:"team1"`
	Team2       string `json:"team2"`
	EvilTeam    int    `json:"evil_team"`
	Winner      int    `json:"winner"`
	Script      string `json:"script"`
	Storyteller string `json:"storyteller"`
}

func (req *submissionRequest) toSubmission() service.Submission {
	return service.Submission{
		Team1:       req.Team1,
		Team2:       req.Team2,
		EvilTeam:    teamSide(req.EvilTeam),
		Winner:      teamSide(req.Winner),
		Script:      req.Script,
		Storyteller: req.Storyteller,
	}
}

func teamSide(n int) roster.TeamSide {
	switch n {
	case 1:
		return roster.Team1
	case 2:
		return roster.Team2
	default:
		return roster.TeamNone
	}
}

func (s *TrackerServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := s.matchSvc.Submit(r.Context(), req.toSubmission())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *TrackerServer) handleEdit(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var req submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := s.matchSvc.Edit(r.Context(), gameID, req.toSubmission())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *TrackerServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.matchSvc.Delete(r.Context(), gameID); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *TrackerServer) handleGameLog(w http.ResponseWriter, r *http.Request) {
	games, err := s.matchSvc.GameLog(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, games)
}

func (s *TrackerServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.statsSvc.Leaderboard(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *TrackerServer) handlePlayer(w http.ResponseWriter, r *http.Request) {
	player, err := s.statsSvc.PlayerHistory(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, player)
}

func (s *TrackerServer) handleDelta(w http.ResponseWriter, r *http.Request) {
	start, err := strconv.ParseInt(r.URL.Query().Get("start"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	end, err := strconv.ParseInt(r.URL.Query().Get("end"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	delta, err := s.statsSvc.RatingDelta(r.Context(), r.PathValue("name"), start, end)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, delta)
}

func (s *TrackerServer) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	bd, err := s.statsSvc.PlayerBreakdown(r.Context(), r.PathValue("name"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bd)
}

func (s *TrackerServer) handleScripts(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsSvc.ScriptStats(r.Context(), r.URL.Query().Get("storyteller"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *TrackerServer) handleRoles(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsSvc.RoleStats(r.Context(), r.URL.Query().Get("storyteller"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *TrackerServer) handleCategories(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsSvc.CategoryStats(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *TrackerServer) handleStorytellers(w http.ResponseWriter, r *http.Request) {
	names, err := s.statsSvc.Storytellers(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

func (s *TrackerServer) handleVersus(w http.ResponseWriter, r *http.Request) {
	first := r.URL.Query().Get("a")
	second := r.URL.Query().Get("b")
	if first == "" || second == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("query parameters a and b are required"))
		return
	}

	stats, err := s.statsSvc.Versus(r.Context(), first, second)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *TrackerServer) handleRevisions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	revisions, err := s.revisions.List(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, revisions)
}

func (s *TrackerServer) handleImport(w http.ResponseWriter, r *http.Request) {
	count, err := s.syncSvc.Import(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"imported": count})
}

func (s *TrackerServer) handleExport(w http.ResponseWriter, r *http.Request) {
	count, err := s.syncSvc.Export(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"pushed": count})
}

func (s *TrackerServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *TrackerServer) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeServiceError maps the error taxonomy to HTTP statuses:
// validation failures block the action with an explanatory message,
// unknown-role failures surface the offending token, everything else
// is internal.
func (s *TrackerServer) writeServiceError(w http.ResponseWriter, err error) {
	var validation *roster.ValidationError
	if errors.As(err, &validation) {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	var unknownRole *analytics.UnknownRoleError
	if errors.As(err, &unknownRole) {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if errors.Is(err, api.ErrSyncDisabled) {
		s.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeError(w, http.StatusInternalServerError, err)
}
