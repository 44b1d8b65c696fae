package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/XavierBriggs/gridiron/internal/handlers"
	"github.com/XavierBriggs/gridiron/internal/league"
	"github.com/XavierBriggs/gridiron/internal/scheduler"
	"github.com/XavierBriggs/gridiron/internal/season"
	"github.com/XavierBriggs/gridiron/internal/sim"
	"github.com/XavierBriggs/gridiron/pkg/contracts"
	"github.com/XavierBriggs/gridiron/pkg/models"
	"github.com/go-chi/chi/v5"
)

// newTestRouter wires the handler with in-memory collaborators only; cache,
// stream, history and hub are all absent, which the save path must tolerate
func newTestRouter() *chi.Mux {
	collab := contracts.Collaborators{Scheduler: scheduler.RoundRobin{}, Retirement: season.Retirements{}}.WithDefaults()
	engine := sim.NewEngine(collab)
	controller := season.NewController(collab, engine)
	registry := league.NewRegistry()

	h := handlers.NewHandler(registry, engine, controller, collab, nil, nil, nil, nil)

	r := chi.NewRouter()
	r.Get("/health", h.HealthCheck)
	r.Route("/api/v1/leagues", func(r chi.Router) {
		r.Post("/", h.CreateLeague)
		r.Route("/{league_id}", func(r chi.Router) {
			r.Get("/", h.GetLeague)
			r.Get("/standings", h.GetStandings)
			r.Get("/news", h.GetNews)
			r.Get("/results/{week}", h.GetWeekResults)
			r.Post("/weeks/simulate", h.SimulateWeek)
			r.Post("/seasons/simulate", h.SimulateSeason)
			r.Post("/seasons/next", h.StartNewSeason)
			r.Post("/playoffs/winner", h.RecordPlayoffWinner)
			r.Post("/offseason", h.StartOffseason)
		})
	})
	return r
}

func leaguePayload(id string) handlers.CreateLeagueRequest {
	mkTeam := func(teamID int, name, abbr string) *models.Team {
		return &models.Team{
			ID:   teamID,
			Name: name,
			Abbr: abbr,
			Roster: []*models.Player{{
				ID:        abbr + "-qb",
				Name:      name + " QB",
				Position:  models.QB,
				Age:       26,
				Overall:   79,
				Potential: 85,
				Ratings:   map[string]int{"throwPower": 79, "throwAccuracy": 79, "awareness": 79},
			}},
			GamePlan: models.DefaultGamePlan(),
		}
	}
	return handlers.CreateLeagueRequest{
		ID:   id,
		Year: 2026,
		Seed: 31,
		Teams: []*models.Team{
			mkTeam(0, "Hawks", "HWK"),
			mkTeam(1, "Bears", "BRS"),
		},
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateLeagueGeneratesSchedule(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/leagues", leaguePayload("alpha"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Weeks int    `json:"weeks"`
		Phase string `json:"phase"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Weeks != 1 {
		t.Errorf("2 teams round-robin should be 1 week, got %d", resp.Weeks)
	}
	if resp.Phase != string(season.PhaseRegularSeason) {
		t.Errorf("phase = %s, want REGULAR_SEASON", resp.Phase)
	}

	// same id again conflicts
	rec = doJSON(t, router, http.MethodPost, "/api/v1/leagues", leaguePayload("alpha"))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate create: status %d, want 409", rec.Code)
	}
}

func TestCreateLeagueValidation(t *testing.T) {
	router := newTestRouter()

	payload := leaguePayload("tiny")
	payload.Teams = payload.Teams[:1]
	rec := doJSON(t, router, http.MethodPost, "/api/v1/leagues", payload)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("one-team league: status %d, want 400", rec.Code)
	}
}

func TestSimulateWeekEndpoint(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/api/v1/leagues", leaguePayload("beta"))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/leagues/beta/weeks/simulate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Week           int                 `json:"week"`
		GamesSimulated int                 `json:"games_simulated"`
		Results        []models.GameResult `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Week != 2 || resp.GamesSimulated != 1 || len(resp.Results) != 1 {
		t.Errorf("unexpected summary: %+v", resp)
	}

	// week 1 results are now queryable
	rec = doJSON(t, router, http.MethodGet, "/api/v1/leagues/beta/results/1", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("results lookup: status %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/leagues/beta/results/5", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unsimulated week: status %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/leagues/missing/weeks/simulate", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown league: status %d, want 404", rec.Code)
	}
}

func TestStandingsSortedByWins(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/api/v1/leagues", leaguePayload("gamma"))
	doJSON(t, router, http.MethodPost, "/api/v1/leagues/gamma/weeks/simulate", nil)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/leagues/gamma/standings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var resp struct {
		Standings []struct {
			Record models.Record `json:"record"`
		} `json:"standings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Standings) != 2 {
		t.Fatalf("got %d standings rows, want 2", len(resp.Standings))
	}
	if resp.Standings[0].Record.Wins < resp.Standings[1].Record.Wins {
		t.Error("standings not sorted by wins")
	}
}

func TestFullSeasonLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter()
	doJSON(t, router, http.MethodPost, "/api/v1/leagues", leaguePayload("cycle"))

	// regular season
	rec := doJSON(t, router, http.MethodPost, "/api/v1/leagues/cycle/seasons/simulate", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("season simulate: status %d, body %s", rec.Code, rec.Body.String())
	}

	// offseason is blocked until a champion is recorded
	rec = doJSON(t, router, http.MethodPost, "/api/v1/leagues/cycle/offseason", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("offseason without winner: status %d, want 409", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/leagues/cycle/playoffs/winner",
		map[string]int{"team_id": 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("record winner: status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/leagues/cycle/offseason", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("offseason: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/leagues/cycle/seasons/next", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("new season: status %d", rec.Code)
	}
	var resp struct {
		Year  int    `json:"year"`
		Week  int    `json:"week"`
		Phase string `json:"phase"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Year != 2027 || resp.Week != 1 || resp.Phase != string(season.PhaseRegularSeason) {
		t.Errorf("new season state: %+v", resp)
	}

	// championship narrative landed in the news feed
	rec = doJSON(t, router, http.MethodGet, "/api/v1/leagues/cycle/news", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("news: status %d", rec.Code)
	}
	var news struct {
		News []models.NewsItem `json:"news"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &news); err != nil {
		t.Fatal(err)
	}
	champ := false
	for _, item := range news.News {
		if item.Type == models.NewsPlayoffs {
			champ = true
		}
	}
	if !champ {
		t.Error("expected a championship news item")
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter()
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status %d", rec.Code)
	}
}
