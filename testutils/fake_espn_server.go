package testutils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Event ids the fake knows about.
const (
	// FinalEventID is a finished game: the away team (21) scored
	// 7,10,0,5 by quarter and the home team (12) scored 0,14,7,4.
	FinalEventID = "401547417"
	// LiveEventID is still in the second quarter.
	LiveEventID = "401547418"
	// ScheduledEventID has not kicked off, no linescores yet.
	ScheduledEventID = "401547999"

	AwayTeamID = "21"
	HomeTeamID = "12"
)

type FakeESPNServer struct {
	s *httptest.Server

	mu               sync.Mutex
	weekListRequests int
}

func NewFakeESPNServer() *FakeESPNServer {
	f := &FakeESPNServer{}

	r := chi.NewRouter()
	r.Route("/apis/site/v2/sports/football/nfl", func(r chi.Router) {
		r.Get("/summary", f.summaryHandler)
		r.Get("/scoreboard", f.scoreboardHandler)
	})
	r.Route("/v2/sports/football/leagues/nfl/seasons/{year}/types/2/weeks", func(r chi.Router) {
		r.Get("/", f.weekListHandler)
		r.Get("/{weekNum}", f.weekHandler)
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeESPNServer) Close() {
	f.s.Close()
}

func (f *FakeESPNServer) URL() string {
	return f.s.URL
}

// WeekListRequests reports how many times the week-list endpoint was hit.
// Used to verify the weeks cache actually caches.
func (f *FakeESPNServer) WeekListRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.weekListRequests
}

func (f *FakeESPNServer) summaryHandler(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("event") {
	case FinalEventID:
		serveJSON(w, summaryJSON("STATUS_FINAL", true,
			`[{"displayValue":"7"},{"displayValue":"10"},{"displayValue":"0"},{"displayValue":"5"}]`,
			`[{"displayValue":"0"},{"displayValue":"14"},{"displayValue":"7"},{"displayValue":"4"}]`))
	case LiveEventID:
		serveJSON(w, summaryJSON("STATUS_IN_PROGRESS", false,
			`[{"displayValue":"7"},{"displayValue":"3"}]`,
			`[{"displayValue":"0"},{"displayValue":"10"}]`))
	case ScheduledEventID:
		serveJSON(w, summaryJSON("STATUS_SCHEDULED", false, `[]`, `[]`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func summaryJSON(status string, completed bool, awayLinescores, homeLinescores string) string {
	return fmt.Sprintf(`{
		"header": {
			"id": "401547417",
			"competitions": [{
				"competitors": [
					{
						"id": "%s",
						"homeAway": "away",
						"team": {"id": "%s", "displayName": "Philadelphia Eagles", "abbreviation": "PHI"},
						"linescores": %s
					},
					{
						"id": "%s",
						"homeAway": "home",
						"team": {"id": "%s", "displayName": "Kansas City Chiefs", "abbreviation": "KC"},
						"linescores": %s
					}
				],
				"status": {"type": {"name": "%s", "completed": %t, "shortDetail": "Final"}}
			}]
		}
	}`, AwayTeamID, AwayTeamID, awayLinescores, HomeTeamID, HomeTeamID, homeLinescores, status, completed)
}

func (f *FakeESPNServer) scoreboardHandler(w http.ResponseWriter, r *http.Request) {
	serveJSON(w, fmt.Sprintf(`{
		"events": [
			{
				"id": "%s",
				"name": "Philadelphia Eagles at Kansas City Chiefs",
				"shortName": "PHI @ KC",
				"competitions": [{
					"competitors": [
						{"id": "%s", "homeAway": "away", "team": {"id": "%s", "displayName": "Philadelphia Eagles"}},
						{"id": "%s", "homeAway": "home", "team": {"id": "%s", "displayName": "Kansas City Chiefs"}}
					],
					"status": {"type": {"name": "STATUS_SCHEDULED"}}
				}]
			},
			{
				"id": "%s",
				"name": "Already Played at Somewhere",
				"shortName": "AP @ SW",
				"competitions": [{
					"competitors": [],
					"status": {"type": {"name": "STATUS_FINAL", "completed": true}}
				}]
			}
		]
	}`, ScheduledEventID, AwayTeamID, AwayTeamID, HomeTeamID, HomeTeamID, FinalEventID))
}

func (f *FakeESPNServer) weekListHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.weekListRequests++
	f.mu.Unlock()

	year := chi.URLParam(r, "year")
	base := fmt.Sprintf("http://%s/v2/sports/football/leagues/nfl/seasons/%s/types/2/weeks", r.Host, year)
	serveJSON(w, fmt.Sprintf(`{
		"items": [
			{"$ref": "%s/1"},
			{"$ref": "%s/2"},
			{"$ref": "%s/3"}
		]
	}`, base, base, base))
}

func (f *FakeESPNServer) weekHandler(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "weekNum") {
	case "1":
		serveJSON(w, `{"number": 1, "text": "Week 1"}`)
	case "2":
		serveJSON(w, `{"number": 2, "text": "Week 2"}`)
	default:
		// Unresolvable $ref, the client should skip it.
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serveJSON(w http.ResponseWriter, body string) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
