package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kehernandez7/squares/controller"
	"github.com/kehernandez7/squares/db"
	"github.com/kehernandez7/squares/model"
	"github.com/unrolled/render"
)

// Request and response schemas. Everything crossing the HTTP boundary is
// validated into these before any controller call.

type errorResponse struct {
	Error string `json:"error"`
}

type createGameRequest struct {
	ExternalEventID string `json:"externalEventId"`
	RowTeamID       string `json:"rowTeamId"`
	ColTeamID       string `json:"colTeamId"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	Email           string `json:"email"`
}

type gameJSON struct {
	UUID             string `json:"uuid"`
	Name             string `json:"name,omitempty"`
	ExternalEventID  string `json:"externalEventId"`
	RowTeamID        string `json:"rowTeamId"`
	ColTeamID        string `json:"colTeamId"`
	PasswordRequired bool   `json:"passwordRequired"`
	Complete         bool   `json:"complete"`
	GridSize         int    `json:"gridSize"`
}

type createGameResponse struct {
	Game gameJSON `json:"game"`
}

type eventJSON struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Status    string `json:"status"`
	Final     bool   `json:"final"`
}

type cellJSON struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type selectionJSON struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Name string `json:"name"`
}

type winnerJSON struct {
	Row      int   `json:"row"`
	Col      int   `json:"col"`
	Quarters []int `json:"quarters"`
}

type numbersJSON struct {
	Row []int `json:"row"`
	Col []int `json:"col"`
}

type gameStateResponse struct {
	Game        gameJSON        `json:"game"`
	Event       *eventJSON      `json:"event"`
	RowTeamName string          `json:"rowTeamName"`
	ColTeamName string          `json:"colTeamName"`
	Selections  []selectionJSON `json:"selections"`
	Numbers     *numbersJSON    `json:"numbers"`
	Winners     []winnerJSON    `json:"winners"`
}

type claimRequest struct {
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Cells []cellJSON `json:"cells"`
}

type claimResponse struct {
	Name     string     `json:"name"`
	Partial  bool       `json:"partial,omitempty"`
	Accepted []cellJSON `json:"accepted"`
	Rejected []cellJSON `json:"rejected,omitempty"`
}

type metaResponse struct {
	PasswordRequired bool `json:"passwordRequired"`
}

type verifyPasswordRequest struct {
	Password string `json:"password"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type weekJSON struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

type upcomingJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ShortDetail string   `json:"shortDetail"`
	Competitors []string `json:"competitors"`
	RowTeamID   string   `json:"rowTeamId"`
	ColTeamID   string   `json:"colTeamId"`
}

func createGameHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if strings.TrimSpace(req.ExternalEventID) == "" ||
			strings.TrimSpace(req.RowTeamID) == "" ||
			strings.TrimSpace(req.ColTeamID) == "" {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "missing required fields"})
			return
		}

		game, err := ctrl.CreateGame(r.Context(), controller.GameParams{
			NFLEventID:  req.ExternalEventID,
			RowTeamID:   req.RowTeamID,
			ColTeamID:   req.ColTeamID,
			Name:        req.Name,
			Password:    req.Password,
			NotifyEmail: req.Email,
		})
		if err != nil {
			renderError(render, w, err)
			return
		}

		render.JSON(w, http.StatusCreated, createGameResponse{Game: toGameJSON(game)})
	}
}

func getGameHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		state, err := ctrl.GetGameState(r.Context(), gameID)
		if err != nil {
			renderError(render, w, err)
			return
		}

		resp := gameStateResponse{
			Game:        toGameJSON(state.Game),
			RowTeamName: state.RowTeamName,
			ColTeamName: state.ColTeamName,
			Selections:  make([]selectionJSON, 0, len(state.Selections)),
			Winners:     make([]winnerJSON, 0, len(state.Winners)),
		}
		if state.Event != nil {
			resp.Event = &eventJSON{
				Name:      state.Event.Name,
				ShortName: state.Event.ShortName,
				Status:    state.Event.StatusName,
				Final:     state.Event.Final(),
			}
		}
		for _, s := range state.Selections {
			resp.Selections = append(resp.Selections, selectionJSON{Row: s.Row, Col: s.Col, Name: s.UserName})
		}
		if state.Numbers != nil {
			resp.Numbers = &numbersJSON{Row: state.Numbers.Rows, Col: state.Numbers.Cols}
		}
		for _, win := range state.Winners {
			resp.Winners = append(resp.Winners, winnerJSON{Row: win.Row, Col: win.Col, Quarters: win.Quarters})
		}

		render.JSON(w, http.StatusOK, resp)
	}
}

func claimCellsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")

		var req claimRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || len(req.Cells) == 0 {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "missing fields"})
			return
		}

		cells := make([]model.Cell, 0, len(req.Cells))
		for _, c := range req.Cells {
			cells = append(cells, model.Cell{Row: c.Row, Col: c.Col})
		}

		result, err := ctrl.ClaimCells(r.Context(), gameID, req.Name, req.Email, cells)
		if err != nil {
			renderError(render, w, err)
			return
		}

		resp := claimResponse{
			Name:     result.UserName,
			Partial:  result.Partial(),
			Accepted: toCellJSON(result.Accepted),
			Rejected: toCellJSON(result.Rejected),
		}
		// 207 tells the client to re-fetch and reconcile which of their
		// picks actually stuck.
		status := http.StatusCreated
		if result.Partial() {
			status = http.StatusMultiStatus
		}
		render.JSON(w, status, resp)
	}
}

func metaHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		required, err := ctrl.PasswordRequired(r.Context(), gameID)
		if err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, metaResponse{PasswordRequired: required})
	}
}

func verifyPasswordHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")

		var req verifyPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
		if req.Password == "" {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: "missing password"})
			return
		}

		if err := ctrl.VerifyPassword(r.Context(), gameID, req.Password); err != nil {
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, successResponse{Success: true})
	}
}

func getNumbersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		numbers, err := ctrl.GetNumbers(r.Context(), gameID)
		if err != nil {
			if errors.Is(err, db.ErrNumbersNotGenerated) {
				render.JSON(w, http.StatusOK, messageResponse{Message: "Numbers not yet generated."})
				return
			}
			renderError(render, w, err)
			return
		}
		render.JSON(w, http.StatusOK, numbersJSON{Row: numbers.Rows, Col: numbers.Cols})
	}
}

func generateNumbersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := chi.URLParam(r, "gameID")
		numbers, generated, err := ctrl.EnsureNumbers(r.Context(), gameID)
		if err != nil {
			renderError(render, w, err)
			return
		}

		status := http.StatusOK
		if generated {
			status = http.StatusCreated
		}
		render.JSON(w, status, numbersJSON{Row: numbers.Rows, Col: numbers.Cols})
	}
}

func weeksHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weeks, err := ctrl.ListWeeks(r.Context())
		if err != nil {
			renderError(render, w, err)
			return
		}

		resp := make([]weekJSON, 0, len(weeks))
		for _, week := range weeks {
			resp = append(resp, weekJSON{Number: week.Number, Text: week.Text})
		}
		render.JSON(w, http.StatusOK, resp)
	}
}

func upcomingHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season := r.URL.Query().Get("season")
		seasonType := r.URL.Query().Get("type")
		week := r.URL.Query().Get("week")

		events, err := ctrl.UpcomingGames(r.Context(), season, seasonType, week)
		if err != nil {
			renderError(render, w, err)
			return
		}

		resp := make([]upcomingJSON, 0, len(events))
		for _, ev := range events {
			resp = append(resp, upcomingJSON{
				ID:          ev.ID,
				Name:        ev.Name,
				ShortDetail: ev.ShortDetail,
				Competitors: ev.Competitors,
				RowTeamID:   ev.RowTeamID,
				ColTeamID:   ev.ColTeamID,
			})
		}
		render.JSON(w, http.StatusOK, resp)
	}
}

func toGameJSON(g *model.Game) gameJSON {
	return gameJSON{
		UUID:             g.UUID,
		Name:             g.Name,
		ExternalEventID:  g.NFLEventID,
		RowTeamID:        g.RowTeamID,
		ColTeamID:        g.ColTeamID,
		PasswordRequired: g.PasswordRequired(),
		Complete:         g.Complete,
		GridSize:         g.GridSize,
	}
}

func toCellJSON(cells []model.Cell) []cellJSON {
	result := make([]cellJSON, 0, len(cells))
	for _, c := range cells {
		result = append(result, cellJSON{Row: c.Row, Col: c.Col})
	}
	return result
}

// renderError maps controller and storage errors onto the response
// taxonomy. Anything unrecognized is an opaque 500.
func renderError(render *render.Render, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrGameNotFound):
		render.JSON(w, http.StatusNotFound, errorResponse{Error: "game not found"})
	case errors.Is(err, controller.ErrInvalidPassword):
		render.JSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid password"})
	case errors.Is(err, controller.ErrInvalidCell):
		render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		render.JSON(w, http.StatusInternalServerError, errorResponse{Error: "unexpected server error"})
	}
}
