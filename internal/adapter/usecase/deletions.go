package usecase

import (
	"context"
	"errors"
	"log/slog"

	"mesa-console/internal/core/confirm"
	"mesa-console/internal/metrics"
)

// Deletions runs delete confirmations through a shared registry so that
// concurrent submissions for one entity never issue a second request.
type Deletions struct {
	registry *confirm.Registry
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewDeletions(m *metrics.Metrics, logger *slog.Logger) *Deletions {
	return &Deletions{registry: confirm.NewRegistry(), metrics: m, logger: logger}
}

// Dialog returns the state a freshly opened dialog for the entity shows:
// Pending while someone's delete runs, Idle otherwise. It never records
// anything.
func (d *Deletions) Dialog(resource, id string) confirm.State {
	return d.registry.State(resource, id)
}

// Confirm submits the dialog. The returned flow carries the state to
// render: closed on success, pending when another submission is running,
// failed with the inline error otherwise.
func (d *Deletions) Confirm(ctx context.Context, resource, id string, del confirm.DeleteFunc) (*confirm.DeleteFlow, error) {
	flow, err := d.registry.Confirm(ctx, resource, id, del, nil)
	switch {
	case err == nil:
		d.metrics.Delete(resource, "ok")
		d.logger.InfoContext(ctx, "entity deleted", slog.String("resource", resource), slog.String("id", id))
	case errors.Is(err, confirm.ErrPending):
		d.metrics.Delete(resource, "pending")
	default:
		d.metrics.Delete(resource, "error")
		d.logger.ErrorContext(ctx, "delete failed", slog.String("resource", resource), slog.String("id", id), slog.Any("error", err))
	}
	return flow, err
}

// Cancel closes the dialog unless a delete is in flight.
func (d *Deletions) Cancel(resource, id string) bool {
	return d.registry.Cancel(resource, id)
}
