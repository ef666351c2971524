// Package receiver é um app externo mínimo que consome os webhooks da plataforma.
// Serve como referência de integração e para testes ponta a ponta.
package receiver

import (
	"encoding/json"
	"io"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"

	"apphooks/internal/logger"
	"apphooks/internal/webhook"
)

const (
	defaultCapacity = 100
	maxBodyBytes    = 1 << 20
)

type Event struct {
	Event       string          `json:"event"`
	InstituteID int64           `json:"instituteId"`
	AppID       int64           `json:"appId"`
	Payload     json.RawMessage `json:"payload"`
	ReceivedAt  time.Time       `json:"receivedAt"`
}

type Receiver struct {
	secret   string
	capacity int
	logger   logger.Logger

	mu     sync.RWMutex
	events []Event
}

// New cria um receiver que guarda os últimos capacity eventos válidos.
func New(secret string, capacity int, log logger.Logger) *Receiver {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if log == nil {
		log = logger.NewForComponent("receiver")
	}
	return &Receiver{
		secret:   secret,
		capacity: capacity,
		logger:   log,
	}
}

func (rc *Receiver) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/webhook", rc.handleWebhook).Methods(http.MethodPost)
	r.HandleFunc("/events", rc.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return alice.New(rc.recoverer, rc.requestLogger, limitBody).Then(r)
}

func (rc *Receiver) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"message": "Payload too large"})
		return
	}

	if !webhook.Verify(rc.secret, body, r.Header.Get(webhook.SignatureHeader)) {
		rc.logger.Warn("Webhook com assinatura inválida", "remote", r.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid webhook signature"})
		return
	}

	var payload webhook.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON payload"})
		return
	}

	rc.store(Event{
		Event:       string(payload.Event),
		InstituteID: payload.InstituteID,
		AppID:       payload.AppID,
		Payload:     body,
		ReceivedAt:  time.Now().UTC(),
	})

	rc.logger.Info("Evento recebido", "event", payload.Event, "instituteID", payload.InstituteID, "appID", payload.AppID)
	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (rc *Receiver) handleEvents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"events": rc.Events()})
}

func (rc *Receiver) store(e Event) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.events = append(rc.events, e)
	if over := len(rc.events) - rc.capacity; over > 0 {
		rc.events = append(rc.events[:0:0], rc.events[over:]...)
	}
}

// Events devolve uma cópia, do mais antigo para o mais recente.
func (rc *Receiver) Events() []Event {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return append([]Event{}, rc.events...)
}

func (rc *Receiver) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				rc.logger.Error("Panic recuperado", "panic", rec, "stack", string(debug.Stack()))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (rc *Receiver) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		rc.logger.Debug("Request processado", "method", r.Method, "path", r.URL.Path, "latency", time.Since(start))
	})
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
