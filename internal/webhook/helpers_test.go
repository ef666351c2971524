package webhook

import (
	"context"
	"errors"
	"sync"
	"time"

	"apphooks/internal/logger"
)

type fakeApps struct {
	mu      sync.Mutex
	targets map[int64]*Target
	err     error
	lookups int
}

func newFakeApps() *fakeApps {
	return &fakeApps{targets: make(map[int64]*Target)}
}

func (f *fakeApps) set(appID int64, secret string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets[appID] = &Target{WebhookSecret: secret}
}

func (f *fakeApps) WebhookTarget(_ context.Context, appID int64) (*Target, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.targets[appID]
	if !ok {
		return nil, ErrAppNotFound
	}
	copied := *t
	return &copied, nil
}

type recordedAttempt struct {
	Attempt
	at time.Time
}

type fakeLog struct {
	mu       sync.Mutex
	attempts []recordedAttempt
	err      error
}

func (f *fakeLog) AppendAttempt(_ context.Context, a *Attempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts = append(f.attempts, recordedAttempt{Attempt: *a, at: time.Now()})
	return f.err
}

func (f *fakeLog) snapshot() []recordedAttempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedAttempt, len(f.attempts))
	copy(out, f.attempts)
	return out
}

func (f *fakeLog) statusCodes() []int {
	var codes []int
	for _, a := range f.snapshot() {
		codes = append(codes, a.StatusCode)
	}
	return codes
}

var errStoreDown = errors.New("banco indisponível")

func testConfig() Config {
	return Config{
		GlobalSecret: "global-secret",
		MaxRetries:   3,
		RetryDelay:   0,
		Timeout:      2 * time.Second,
	}
}

func newTestDispatcher(cfg Config, apps AppSource, log AttemptLog) *Dispatcher {
	return NewDispatcher(cfg, apps, log, WithLogger(logger.Nop()))
}
