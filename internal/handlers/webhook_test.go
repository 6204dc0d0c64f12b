package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Armaqdev/chatbot-messenger/internal/dispatch"
	"github.com/Armaqdev/chatbot-messenger/internal/models"
)

type recordingSender struct {
	ch chan string // recipient of each send
}

func newRecordingSender() *recordingSender {
	return &recordingSender{ch: make(chan string, 16)}
}

func (s *recordingSender) SendText(_ context.Context, recipientID, _ string) (*models.SendResponse, error) {
	s.ch <- recipientID
	return &models.SendResponse{RecipientID: recipientID}, nil
}

func newTestHandler(sender dispatch.Sender) *Handler {
	d := dispatch.NewDispatcher(nil, sender, dispatch.NewRotator([]string{"A1"}), "S1", zerolog.Nop())
	return NewHandler(d, "secret-token", zerolog.Nop())
}

func verifyRequest(mode, token, challenge string) *http.Request {
	q := url.Values{}
	q.Set("hub.mode", mode)
	q.Set("hub.verify_token", token)
	q.Set("hub.challenge", challenge)
	return httptest.NewRequest(http.MethodGet, "/webhook?"+q.Encode(), nil)
}

func TestVerifyWebhookSuccess(t *testing.T) {
	h := newTestHandler(newRecordingSender())

	w := httptest.NewRecorder()
	h.VerifyWebhook(w, verifyRequest("subscribe", "secret-token", "challenge-123"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "challenge-123" {
		t.Errorf("expected challenge echoed, got %q", body)
	}
}

func TestVerifyWebhookRejections(t *testing.T) {
	cases := []struct {
		name        string
		mode, token string
	}{
		{"wrong token", "subscribe", "wrong"},
		{"wrong mode", "unsubscribe", "secret-token"},
		{"empty token", "subscribe", ""},
		{"empty mode", "", "secret-token"},
		{"token with whitespace", "subscribe", " secret-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(newRecordingSender())
			w := httptest.NewRecorder()
			h.VerifyWebhook(w, verifyRequest(tc.mode, tc.token, "challenge-123"))

			if w.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", w.Code)
			}
			if strings.Contains(w.Body.String(), "challenge-123") {
				t.Error("challenge must not be echoed on rejection")
			}
		})
	}
}

func TestReceiveWebhookAcknowledgesImmediately(t *testing.T) {
	sender := newRecordingSender()
	h := newTestHandler(sender)

	payload := `{"object":"page","entry":[{"messaging":[{"sender":{"id":"U1"},"message":{"text":"hola"}}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	w := httptest.NewRecorder()
	h.ReceiveWebhook(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// Fan-out runs detached: fallback reply to U1, supervisor S1, advisor A1.
	want := map[string]bool{"U1": false, "S1": false, "A1": false}
	for i := 0; i < len(want); i++ {
		select {
		case recipient := <-sender.ch:
			want[recipient] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for deliveries, got %v", want)
		}
	}
	for recipient, seen := range want {
		if !seen {
			t.Errorf("no delivery to %s", recipient)
		}
	}
}

func TestReceiveWebhookMalformedBodyStill200(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "this is not json"},
		{"entry not an array", `{"entry":"nope"}`},
		{"empty body", ""},
		{"empty object", "{}"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sender := newRecordingSender()
			h := newTestHandler(sender)

			req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			h.ReceiveWebhook(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 for %s, got %d", tc.name, w.Code)
			}

			select {
			case recipient := <-sender.ch:
				t.Errorf("expected no deliveries, got one to %s", recipient)
			case <-time.After(100 * time.Millisecond):
			}
		})
	}
}
