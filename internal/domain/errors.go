// Package domain holds the error taxonomy and the small set of contracts
// shared between the HTTP layer and the use cases.
package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited")
	ErrInternal    = errors.New("internal error")
)

// Greeter produces the business payloads of the API routes.
type Greeter interface {
	Username(ctx context.Context) string
	Greet(ctx context.Context, name string) string
}
