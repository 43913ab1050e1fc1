package restapi

import (
	"context"
	"fmt"
	"log/slog"
)

// ErrorPolicy decides what a failed upstream call returns to the caller.
type ErrorPolicy int

const (
	// Propagate logs the failure and returns the wrapped error. Used by
	// single-entity reads and all mutations.
	Propagate ErrorPolicy = iota
	// DegradeToEmpty logs the failure and reports no error; the caller
	// returns an empty collection. Used by list reads.
	DegradeToEmpty
)

func (p ErrorPolicy) String() string {
	switch p {
	case Propagate:
		return "propagate"
	case DegradeToEmpty:
		return "degrade_to_empty"
	default:
		return "unknown"
	}
}

// resolve applies policy to err. It returns nil when err is nil or the
// policy swallowed it.
func (c *Client) resolve(ctx context.Context, p ErrorPolicy, resource, op string, err error) error {
	if err == nil {
		return nil
	}
	c.logger.ErrorContext(ctx, "upstream call failed",
		slog.String("resource", resource),
		slog.String("operation", op),
		slog.String("policy", p.String()),
		slog.Any("error", err),
	)
	if p == DegradeToEmpty {
		c.metrics.Degraded(resource, op)
		return nil
	}
	return fmt.Errorf("%s %s: %w", resource, op, err)
}

// listOf runs fetch under DegradeToEmpty and always returns a non-nil slice.
func listOf[T any](ctx context.Context, c *Client, resource, op string, fetch func() ([]T, error)) []T {
	items, err := fetch()
	if err != nil {
		_ = c.resolve(ctx, DegradeToEmpty, resource, op, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}
