package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/XavierBriggs/gridiron/internal/league"
	"github.com/XavierBriggs/gridiron/internal/season"
	"github.com/XavierBriggs/gridiron/pkg/models"
	"github.com/go-chi/chi/v5"
)

// CreateLeagueRequest is the full league payload. Roster construction is the
// caller's job; this service only simulates what it is handed.
type CreateLeagueRequest struct {
	ID       string           `json:"id"`
	Year     int              `json:"year"`
	Seed     int64            `json:"seed"`
	Teams    []*models.Team   `json:"teams"`
	Schedule *models.Schedule `json:"schedule,omitempty"`
}

// CreateLeague registers a league for simulation
// POST /api/v1/leagues
func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	var req CreateLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid league payload", err)
		return
	}
	if req.ID == "" || len(req.Teams) < 2 {
		respondError(w, http.StatusBadRequest, "league needs an id and at least 2 teams", nil)
		return
	}

	lg := models.NewLeague(req.ID, req.Year, req.Teams, models.Schedule{}, req.Seed)
	if req.Schedule != nil && req.Schedule.Length() > 0 {
		lg.Schedule = *req.Schedule
	} else {
		if h.collab.Scheduler == nil {
			respondError(w, http.StatusBadRequest, "no schedule provided and no scheduler configured", nil)
			return
		}
		schedule, err := h.collab.Scheduler.GenerateSchedule(lg.Teams)
		if err != nil {
			respondError(w, http.StatusBadRequest, "schedule generation failed", err)
			return
		}
		lg.Schedule = schedule
	}

	for _, t := range lg.Teams {
		for _, p := range t.Roster {
			if p.SeasonStartOverall == 0 {
				p.SeasonStartOverall = p.Overall
			}
		}
	}

	if err := h.registry.Register(lg); err != nil {
		respondError(w, http.StatusConflict, "league already exists", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    lg.ID,
		"year":  lg.Year,
		"week":  lg.Week,
		"weeks": lg.Schedule.Length(),
		"phase": season.CurrentPhase(lg),
	})
}

// GetLeague returns the full league state
// GET /api/v1/leagues/{league_id}
func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "league_id")

	err := h.registry.With(id, func(lg *models.League) error {
		respondJSON(w, http.StatusOK, lg)
		return nil
	})
	if errors.Is(err, league.ErrNotFound) {
		respondError(w, http.StatusNotFound, "league not found", nil)
	}
}

// GetStandings returns current team records sorted by wins
// GET /api/v1/leagues/{league_id}/standings
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "league_id")

	err := h.registry.With(id, func(lg *models.League) error {
		type standing struct {
			TeamID int           `json:"team_id"`
			Name   string        `json:"name"`
			Abbr   string        `json:"abbr"`
			Record models.Record `json:"record"`
		}
		standings := make([]standing, 0, len(lg.Teams))
		for _, t := range lg.Teams {
			standings = append(standings, standing{TeamID: t.ID, Name: t.Name, Abbr: t.Abbr, Record: t.Record})
		}
		// wins desc, then point differential
		for i := 1; i < len(standings); i++ {
			for j := i; j > 0 && better(standings[j].Record, standings[j-1].Record); j-- {
				standings[j], standings[j-1] = standings[j-1], standings[j]
			}
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"league_id": lg.ID,
			"year":      lg.Year,
			"week":      lg.Week,
			"standings": standings,
		})
		return nil
	})
	if errors.Is(err, league.ErrNotFound) {
		respondError(w, http.StatusNotFound, "league not found", nil)
	}
}

func better(a, b models.Record) bool {
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	return a.PointsFor-a.PointsAgainst > b.PointsFor-b.PointsAgainst
}

// GetNews returns the league narrative log, most recent last
// GET /api/v1/leagues/{league_id}/news
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "league_id")

	err := h.registry.With(id, func(lg *models.League) error {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"league_id": lg.ID,
			"news":      lg.News,
		})
		return nil
	})
	if errors.Is(err, league.ErrNotFound) {
		respondError(w, http.StatusNotFound, "league not found", nil)
	}
}
