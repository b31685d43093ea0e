package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kehernandez7/squares/controller"
	"github.com/kehernandez7/squares/model"
	"github.com/kehernandez7/squares/platforms/brevo"
	"github.com/kehernandez7/squares/platforms/espn"
	"github.com/kehernandez7/squares/testutils"
	"golang.org/x/crypto/bcrypt"
)

// A global testDB instance to use for all of the tests instead of setting up a new one each time.
var testDB *testutils.TestDB

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if testDB != nil {
				testDB.Shutdown()
			}
			fmt.Printf("panic - %v\n", r)
		}
	}()

	// Setup the global testDB variable
	testDB = testutils.NewTestDB()
	defer testDB.Shutdown()

	code := m.Run()
	os.Exit(code)
}

func newTestRouter(t *testing.T, testCtrl *testutils.TestController) http.Handler {
	t.Helper()

	espnClient := espn.NewForTest(testCtrl.ESPNURL())
	brevoClient := brevo.NewForTest(testCtrl.BrevoURL())

	ctrl, err := controller.New(testCtrl.Clock, testDB.DB, espnClient, brevoClient, "2024", "http://squares.test")
	if err != nil {
		t.Fatalf("error creating controller: %v", err)
	}
	return getRouter(ctrl, newRender())
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("error encoding request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("error creating http request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), into); err != nil {
		t.Fatalf("error decoding response body %q: %v", rr.Body.String(), err)
	}
}

func TestCreateGameHandler(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	rr := doJSON(t, router, http.MethodPost, "/games", createGameRequest{
		ExternalEventID: testutils.FinalEventID,
		RowTeamID:       testutils.AwayTeamID,
		ColTeamID:       testutils.HomeTeamID,
		Name:            "Office Pool",
		Password:        "s3cret",
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}

	var resp createGameResponse
	decodeBody(t, rr, &resp)

	if resp.Game.UUID == "" {
		t.Errorf("expected a uuid in the response")
	}
	if !resp.Game.PasswordRequired {
		t.Errorf("expected passwordRequired to be true")
	}
	if resp.Game.GridSize != model.DefaultGridSize {
		t.Errorf("wrong grid size: %d", resp.Game.GridSize)
	}
}

func TestCreateGameHandler_missingFields(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	rr := doJSON(t, router, http.MethodPost, "/games", createGameRequest{
		RowTeamID: testutils.AwayTeamID,
		ColTeamID: testutils.HomeTeamID,
	})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}

	var resp errorResponse
	decodeBody(t, rr, &resp)
	if resp.Error != "missing required fields" {
		t.Errorf("unexpected error message: %s", resp.Error)
	}
}

func TestMetaAndVerifyPasswordHandlers(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("error hashing test password: %v", err)
	}
	game, err := testutils.AddTestGame(testDB.DB, string(hash))
	if err != nil {
		t.Fatalf("error adding test game: %v", err)
	}

	rr := doJSON(t, router, http.MethodGet, fmt.Sprintf("/games/%s/meta", game.UUID), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	var meta metaResponse
	decodeBody(t, rr, &meta)
	if !meta.PasswordRequired {
		t.Errorf("expected passwordRequired to be true")
	}

	rr = doJSON(t, router, http.MethodPost, fmt.Sprintf("/games/%s/verify-password", game.UUID), verifyPasswordRequest{Password: "s3cret"})
	if rr.Code != http.StatusOK {
		t.Errorf("unexpected status code for the correct password. Got: %d", rr.Code)
	}
	var success successResponse
	decodeBody(t, rr, &success)
	if !success.Success {
		t.Errorf("expected success to be true")
	}

	rr = doJSON(t, router, http.MethodPost, fmt.Sprintf("/games/%s/verify-password", game.UUID), verifyPasswordRequest{Password: "wrong"})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("unexpected status code for a wrong password. Got: %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodPost, fmt.Sprintf("/games/%s/verify-password", game.UUID), verifyPasswordRequest{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unexpected status code for a missing password. Got: %d", rr.Code)
	}
}

func TestMetaHandler_gameNotFound(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	rr := doJSON(t, router, http.MethodGet, "/games/5b1e8aa1-0000-0000-0000-000000000000/meta", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}

	var resp errorResponse
	decodeBody(t, rr, &resp)
	if resp.Error != "game not found" {
		t.Errorf("unexpected error message: %s", resp.Error)
	}
}

func TestClaimCellsHandler(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	game, err := testutils.AddTestGame(testDB.DB, "")
	if err != nil {
		t.Fatalf("error adding test game: %v", err)
	}
	path := fmt.Sprintf("/games/%s", game.UUID)

	rr := doJSON(t, router, http.MethodPost, path, claimRequest{
		Name:  "Bob",
		Email: "bob-claims@example.com",
		Cells: []cellJSON{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}

	var resp claimResponse
	decodeBody(t, rr, &resp)
	if len(resp.Accepted) != 2 || len(resp.Rejected) != 0 {
		t.Errorf("unexpected claim result: %+v", resp)
	}
	if resp.Partial {
		t.Errorf("a fully accepted claim is not partial")
	}

	// A second user overlapping one cell gets a 207 and a rejection.
	rr = doJSON(t, router, http.MethodPost, path, claimRequest{
		Name:  "Carol",
		Email: "carol-claims@example.com",
		Cells: []cellJSON{{Row: 0, Col: 1}, {Row: 5, Col: 5}},
	})
	if rr.Code != http.StatusMultiStatus {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}

	decodeBody(t, rr, &resp)
	if !resp.Partial {
		t.Errorf("expected a partial result")
	}
	if len(resp.Accepted) != 1 || resp.Accepted[0] != (cellJSON{Row: 5, Col: 5}) {
		t.Errorf("wrong accepted cells: %v", resp.Accepted)
	}
	if len(resp.Rejected) != 1 || resp.Rejected[0] != (cellJSON{Row: 0, Col: 1}) {
		t.Errorf("wrong rejected cells: %v", resp.Rejected)
	}
}

func TestClaimCellsHandler_badRequests(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	game, err := testutils.AddTestGame(testDB.DB, "")
	if err != nil {
		t.Fatalf("error adding test game: %v", err)
	}
	path := fmt.Sprintf("/games/%s", game.UUID)

	tests := map[string]struct {
		req      claimRequest
		expected int
	}{
		"missing name": {
			req:      claimRequest{Email: "x@example.com", Cells: []cellJSON{{Row: 0, Col: 0}}},
			expected: http.StatusBadRequest,
		},
		"missing email": {
			req:      claimRequest{Name: "Bob", Cells: []cellJSON{{Row: 0, Col: 0}}},
			expected: http.StatusBadRequest,
		},
		"no cells": {
			req:      claimRequest{Name: "Bob", Email: "x@example.com"},
			expected: http.StatusBadRequest,
		},
		"cell out of bounds": {
			req:      claimRequest{Name: "Bob", Email: "x@example.com", Cells: []cellJSON{{Row: 10, Col: 0}}},
			expected: http.StatusBadRequest,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rr := doJSON(t, router, http.MethodPost, path, tc.req)
			if rr.Code != tc.expected {
				t.Errorf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestNumbersHandlers(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	game, err := testutils.AddTestGame(testDB.DB, "")
	if err != nil {
		t.Fatalf("error adding test game: %v", err)
	}
	path := fmt.Sprintf("/games/%s/numbers", game.UUID)

	// Before generation the GET reports a message, not an error.
	rr := doJSON(t, router, http.MethodGet, path, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	var msg messageResponse
	decodeBody(t, rr, &msg)
	if msg.Message != "Numbers not yet generated." {
		t.Errorf("unexpected message: %s", msg.Message)
	}

	// First POST generates.
	rr = doJSON(t, router, http.MethodPost, path, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}
	var first numbersJSON
	decodeBody(t, rr, &first)
	if len(first.Row) != model.DefaultGridSize || len(first.Col) != model.DefaultGridSize {
		t.Fatalf("wrong number of digits: %d rows, %d cols", len(first.Row), len(first.Col))
	}

	// A second POST returns the same assignment with a 200.
	rr = doJSON(t, router, http.MethodPost, path, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	var second numbersJSON
	decodeBody(t, rr, &second)
	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Errorf("the assignment changed between calls: %v vs %v", first, second)
	}

	rr = doJSON(t, router, http.MethodGet, path, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}
	var loaded numbersJSON
	decodeBody(t, rr, &loaded)
	if fmt.Sprint(first) != fmt.Sprint(loaded) {
		t.Errorf("the stored assignment differs: %v vs %v", first, loaded)
	}
}

func TestGetGameHandler_finalGame(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	game, err := testutils.AddTestGame(testDB.DB, "")
	if err != nil {
		t.Fatalf("error adding test game: %v", err)
	}

	// Generate the numbers so the final event can pay out.
	rr := doJSON(t, router, http.MethodPost, fmt.Sprintf("/games/%s/numbers", game.UUID), nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code generating numbers. Got: %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, fmt.Sprintf("/games/%s", game.UUID), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d, body: %s", rr.Code, rr.Body.String())
	}

	var state gameStateResponse
	decodeBody(t, rr, &state)

	if state.RowTeamName != "Philadelphia Eagles" {
		t.Errorf("wrong row team name: %s", state.RowTeamName)
	}
	if state.ColTeamName != "Kansas City Chiefs" {
		t.Errorf("wrong col team name: %s", state.ColTeamName)
	}
	if state.Event == nil || !state.Event.Final {
		t.Errorf("expected a final event in the response")
	}
	if !state.Game.Complete {
		t.Errorf("expected the game to be complete after the event went final")
	}
	if state.Numbers == nil {
		t.Errorf("expected the numbers in the response")
	}
	// The fake final event always pays out all four quarters somewhere.
	quarters := 0
	for _, w := range state.Winners {
		quarters += len(w.Quarters)
	}
	if quarters != model.NumQuarters {
		t.Errorf("expected %d winning quarters, got %d (%v)", model.NumQuarters, quarters, state.Winners)
	}
}

func TestGetGameHandler_notFound(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	rr := doJSON(t, router, http.MethodGet, "/games/5b1e8aa1-0000-0000-0000-000000000001", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unexpected status code. Got: %d", rr.Code)
	}
}

func TestWeeksHandler(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	rr := doJSON(t, router, http.MethodGet, "/weeks", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}

	var weeks []weekJSON
	decodeBody(t, rr, &weeks)
	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	if weeks[0].Number != 1 || weeks[0].Text != "Week 1" {
		t.Errorf("wrong first week: %+v", weeks[0])
	}
}

func TestUpcomingHandler(t *testing.T) {
	testCtrl := testutils.NewTestController()
	defer testCtrl.Close()
	router := newTestRouter(t, testCtrl)

	rr := doJSON(t, router, http.MethodGet, "/upcoming?week=1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status code. Got: %d", rr.Code)
	}

	var events []upcomingJSON
	decodeBody(t, rr, &events)
	if len(events) != 1 {
		t.Fatalf("expected 1 upcoming event, got %d", len(events))
	}
	if events[0].ID != testutils.ScheduledEventID {
		t.Errorf("wrong event id: %s", events[0].ID)
	}
	if events[0].RowTeamID != testutils.AwayTeamID || events[0].ColTeamID != testutils.HomeTeamID {
		t.Errorf("wrong team ids: %s, %s", events[0].RowTeamID, events[0].ColTeamID)
	}
}
