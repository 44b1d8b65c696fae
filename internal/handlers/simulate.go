package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/XavierBriggs/gridiron/internal/league"
	"github.com/XavierBriggs/gridiron/internal/season"
	"github.com/XavierBriggs/gridiron/internal/sim"
	"github.com/XavierBriggs/gridiron/pkg/models"
	"github.com/go-chi/chi/v5"
)

// SimulateWeekRequest carries optional override results keyed by
// "homeIndex-awayIndex"
type SimulateWeekRequest struct {
	Overrides map[string]sim.OverrideResult `json:"overrides,omitempty"`
}

// SimulateWeek advances a league by one week
// POST /api/v1/leagues/{league_id}/weeks/simulate
func (h *Handler) SimulateWeek(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "league_id")

	var req SimulateWeekRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid simulate payload", err)
			return
		}
	}

	err := h.registry.With(id, func(lg *models.League) error {
		summary, err := h.controller.AdvanceWeek(r.Context(), lg, sim.WeekOptions{Overrides: req.Overrides})
		if err != nil {
			switch {
			case errors.Is(err, sim.ErrOffseason), errors.Is(err, sim.ErrSeasonComplete):
				respondError(w, http.StatusConflict, err.Error(), nil)
			case errors.Is(err, sim.ErrWeekAlreadySimulated):
				respondError(w, http.StatusConflict, "week already simulated", nil)
			default:
				respondError(w, http.StatusInternalServerError, "simulation failed", err)
			}
			return nil
		}

		h.saveWeek(r.Context(), lg, summary)

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"league_id":        lg.ID,
			"week":             lg.Week,
			"phase":            season.CurrentPhase(lg),
			"games_simulated":  summary.GamesSimulated,
			"playoffs_started": summary.PlayoffsStarted,
			"results":          summary.Results,
		})
		return nil
	})
	if errors.Is(err, league.ErrNotFound) {
		respondError(w, http.StatusNotFound, "league not found", nil)
	}
}

// SimulateSeason runs the remaining regular-season weeks in one call.
// Cancelling the request stops the loop at the next week boundary.
// POST /api/v1/leagues/{league_id}/seasons/simulate
func (h *Handler) SimulateSeason(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "league_id")

	err := h.registry.With(id, func(lg *models.League) error {
		summaries, err := league.RunSeason(r.Context(), h.engine, lg, nil)
		for i := range summaries {
			h.saveWeek(r.Context(), lg, &summaries[i])
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, "season loop stopped", err)
			return nil
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"league_id":       lg.ID,
			"week":            lg.Week,
			"phase":           season.CurrentPhase(lg),
			"weeks_simulated": len(summaries),
		})
		return nil
	})
	if errors.Is(err, league.ErrNotFound) {
		respondError(w, http.StatusNotFound, "league not found", nil)
	}
}

// RecordPlayoffWinner stores the champion produced by the external playoff
// subsystem, unblocking the offseason transition
// POST /api/v1/leagues/{league_id}/playoffs/winner
func (h *Handler) RecordPlayoffWinner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "league_id")

	var req struct {
		TeamID int `json:"team_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid winner payload", err)
		return
	}

	err := h.registry.With(id, func(lg *models.League) error {
		team := lg.TeamByID(req.TeamID)
		if team == nil {
			respondError(w, http.StatusBadRequest, "unknown team", nil)
			return nil
		}
		lg.PlayoffWinner = req.TeamID
		h.collab.News.AddNewsItem(lg,
			team.Name+" win the championship",
			team.Name+" are champions of the "+strconv.Itoa(lg.Year)+" season.",
			models.NewsPlayoffs)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"league_id": lg.ID,
			"winner":    req.TeamID,
			"phase":     season.CurrentPhase(lg),
		})
		return nil
	})
	if errors.Is(err, league.ErrNotFound) {
		respondError(w, http.StatusNotFound, "league not found", nil)
	}
}

// StartOffseason runs the once-only offseason transition
// POST /api/v1/leagues/{league_id}/offseason
func (h *Handler) StartOffseason(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "league_id")

	err := h.registry.With(id, func(lg *models.League) error {
		started, err := h.controller.StartOffseason(lg)
		if err != nil {
			respondError(w, http.StatusConflict, err.Error(), nil)
			return nil
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"league_id": lg.ID,
			"started":   started, // false means the offseason was already running
			"phase":     season.CurrentPhase(lg),
		})
		return nil
	})
	if errors.Is(err, league.ErrNotFound) {
		respondError(w, http.StatusNotFound, "league not found", nil)
	}
}

// StartNewSeason resets the league for the next year
// POST /api/v1/leagues/{league_id}/seasons/next
func (h *Handler) StartNewSeason(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "league_id")

	err := h.registry.With(id, func(lg *models.League) error {
		started, err := h.controller.StartNewSeason(lg)
		if err != nil {
			respondError(w, http.StatusConflict, err.Error(), nil)
			return nil
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"league_id": lg.ID,
			"started":   started,
			"year":      lg.Year,
			"week":      lg.Week,
			"phase":     season.CurrentPhase(lg),
		})
		return nil
	})
	if errors.Is(err, league.ErrNotFound) {
		respondError(w, http.StatusNotFound, "league not found", nil)
	}
}

// GetWeekResults returns one week's results for the current season
// GET /api/v1/leagues/{league_id}/results/{week}
func (h *Handler) GetWeekResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "league_id")
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || week < 1 {
		respondError(w, http.StatusBadRequest, "week must be a positive integer", err)
		return
	}

	regErr := h.registry.With(id, func(lg *models.League) error {
		results, ok := lg.ResultsByWeek[week-1]
		if !ok {
			respondError(w, http.StatusNotFound, "week not simulated yet", nil)
			return nil
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"league_id": lg.ID,
			"year":      lg.Year,
			"week":      week,
			"results":   results,
		})
		return nil
	})
	if errors.Is(regErr, league.ErrNotFound) {
		respondError(w, http.StatusNotFound, "league not found", nil)
	}
}

// saveWeek is the post-week save point: cache, stream, history, broadcast.
// Every sink is best effort; a failed save never rolls back the simulation.
func (h *Handler) saveWeek(ctx context.Context, lg *models.League, summary *sim.WeekSummary) {
	if summary == nil || len(summary.Results) == 0 {
		return
	}
	week := lg.Week - 1 // the week the summary belongs to

	if h.cache != nil {
		if err := h.cache.WriteWeekResults(ctx, lg.ID, lg.Year, week, summary.Results); err != nil {
			log.Printf("[handlers] caching week %d results: %v", week, err)
		}
		if err := h.cache.WriteStandings(ctx, lg); err != nil {
			log.Printf("[handlers] caching standings: %v", err)
		}
	}

	for i := range summary.Results {
		res := &summary.Results[i]
		if h.cache != nil && res.Box != nil {
			if err := h.cache.WriteBoxScore(ctx, res.ID, res.Box); err != nil {
				log.Printf("[handlers] caching box score %s: %v", res.ID, err)
			}
		}
		if h.publisher != nil {
			if err := h.publisher.PublishGameResult(ctx, lg.ID, res); err != nil {
				log.Printf("[handlers] publishing result %s: %v", res.ID, err)
			}
		}
	}

	if h.history != nil {
		if err := h.history.InsertResults(ctx, lg.ID, summary.Results); err != nil {
			log.Printf("[handlers] persisting week %d results: %v", week, err)
		}
	}

	if h.hub != nil {
		h.hub.BroadcastJSON("week_result", lg.ID, summary)
	}
}
