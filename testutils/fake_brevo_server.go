package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
)

// SentEmail captures what a test's code asked Brevo to deliver.
type SentEmail struct {
	To      string
	Subject string
}

type FakeBrevoServer struct {
	s *httptest.Server

	mu   sync.Mutex
	sent []SentEmail
}

func NewFakeBrevoServer() *FakeBrevoServer {
	f := &FakeBrevoServer{}

	r := chi.NewRouter()
	r.Post("/v3/smtp/email", f.sendHandler)

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeBrevoServer) Close() {
	f.s.Close()
}

func (f *FakeBrevoServer) URL() string {
	return f.s.URL
}

func (f *FakeBrevoServer) Sent() []SentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]SentEmail(nil), f.sent...)
}

func (f *FakeBrevoServer) sendHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To []struct {
			Email string `json:"email"`
		} `json:"to"`
		Subject string `json:"subject"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.To) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.sent = append(f.sent, SentEmail{To: req.To[0].Email, Subject: req.Subject})
	f.mu.Unlock()

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"messageId": "<202408@smtp-relay.mailin.fr>"}`))
}
