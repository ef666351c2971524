package receiver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apphooks/internal/logger"
	"apphooks/internal/webhook"
)

func post(h http.Handler, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	if signature != "" {
		req.Header.Set(webhook.SignatureHeader, signature)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestReceiver_AcceptsSignedEvents(t *testing.T) {
	rc := New("shared", 10, logger.Nop())
	h := rc.Handler()
	body := `{"event":"institute_app_installed","instituteId":7,"appId":3}`

	w := post(h, body, webhook.Sign("shared", []byte(body)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())

	events := rc.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "institute_app_installed", events[0].Event)
	assert.Equal(t, int64(7), events[0].InstituteID)
	assert.JSONEq(t, body, string(events[0].Payload))
}

func TestReceiver_RejectsBadSignatures(t *testing.T) {
	rc := New("shared", 10, logger.Nop())
	h := rc.Handler()
	body := `{"event":"institute_app_installed"}`

	assert.Equal(t, http.StatusUnauthorized, post(h, body, "").Code)
	assert.Equal(t, http.StatusUnauthorized, post(h, body, webhook.Sign("other", []byte(body))).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, "not json", webhook.Sign("shared", []byte("not json"))).Code)
	assert.Empty(t, rc.Events())
}

func TestReceiver_KeepsLastEvents(t *testing.T) {
	rc := New("s", 2, logger.Nop())
	h := rc.Handler()

	for _, name := range []string{"a", "b", "c"} {
		body := `{"event":"` + name + `"}`
		require.Equal(t, http.StatusOK, post(h, body, webhook.Sign("s", []byte(body))).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "b", resp.Events[0].Event)
	assert.Equal(t, "c", resp.Events[1].Event)
}

func TestReceiver_MethodNotAllowed(t *testing.T) {
	h := New("s", 0, logger.Nop()).Handler()

	req := httptest.NewRequest(http.MethodGet, "/webhook", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

// O dispatcher real entrega para o receiver; o segredo do app é compartilhado.
func TestReceiver_EndToEndWithDispatcher(t *testing.T) {
	rc := New("app-secret", 10, logger.Nop())
	server := httptest.NewServer(rc.Handler())
	defer server.Close()

	apps := appSource{secret: "app-secret"}
	log := &attemptLog{}
	d := webhook.NewDispatcher(webhook.Config{GlobalSecret: "global", Timeout: 2 * time.Second}, apps, log,
		webhook.WithLogger(logger.Nop()))

	resp := d.Send(context.Background(), 7, 3, server.URL+"/webhook", webhook.Payload{
		Event:       webhook.EventAppEnabled,
		InstituteID: 7,
		AppID:       3,
	})
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, resp.Attempt)

	events := rc.Events()
	require.Len(t, events, 1)
	assert.Equal(t, string(webhook.EventAppEnabled), events[0].Event)
}

type appSource struct{ secret string }

func (a appSource) WebhookTarget(context.Context, int64) (*webhook.Target, error) {
	return &webhook.Target{WebhookSecret: a.secret}, nil
}

type attemptLog struct{}

func (attemptLog) AppendAttempt(context.Context, *webhook.Attempt) error { return nil }
