package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	brevoURL = "https://api.brevo.com"

	headerAPIKey = "api-key"

	senderName  = "Fantasy Dart"
	senderEmail = "donotreply@fantasydart.com"
)

type Client interface {
	Send(ctx context.Context, to, subject, html string) error
}

type client struct {
	url        string
	key        string
	httpClient *http.Client
}

func New(key string) (Client, error) {
	c := &client{
		url: brevoURL,
		key: key,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url:        url,
		key:        "not-important",
		httpClient: http.DefaultClient,
	}
}

type sendRequest struct {
	Sender      address   `json:"sender"`
	To          []address `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

type address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

func (c *client) Send(ctx context.Context, to, subject, html string) error {
	payload := sendRequest{
		Sender:      address{Name: senderName, Email: senderEmail},
		To:          []address{{Email: to}},
		Subject:     subject,
		HTMLContent: html,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding brevo request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v3/smtp/email", c.url), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating brevo http request: %w", err)
	}
	req.Header.Add("accept", "application/json")
	req.Header.Add("content-type", "application/json")
	req.Header.Add(headerAPIKey, c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending brevo http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code from brevo: %d", resp.StatusCode)
	}
	return nil
}
