package webhook

import (
	"context"
	"runtime/debug"
)

// Go dispara Send em uma goroutine desacoplada do chamador. O cancelamento do
// contexto da requisição não interrompe a entrega e um panic fica contido aqui.
func (d *Dispatcher) Go(ctx context.Context, instituteID, appID int64, url string, payload any) {
	d.inflight.Add(1)
	d.metrics.InFlightInc()

	go func() {
		defer d.inflight.Done()
		defer d.metrics.InFlightDec()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("Panic recuperado no envio de webhook",
					"panic", r,
					"instituteID", instituteID,
					"appID", appID,
					"stack", string(debug.Stack()))
			}
		}()

		d.Send(context.WithoutCancel(ctx), instituteID, appID, url, payload)
	}()
}

// Wait bloqueia até as entregas em segundo plano terminarem ou ctx expirar.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
