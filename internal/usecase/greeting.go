// Package usecase implements the business payloads served by the HTTP layer.
package usecase

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/otel-greeter/internal/domain"
)

// GreetingService answers the username and greeting routes. It is stateless
// so repeated calls return identical results.
type GreetingService struct {
	username string
}

var _ domain.Greeter = GreetingService{}

// NewGreetingService constructs a GreetingService for the given username.
func NewGreetingService(username string) GreetingService {
	return GreetingService{username: username}
}

// Username returns the configured username.
func (s GreetingService) Username(_ context.Context) string { return s.username }

// Greet interpolates name verbatim; no escaping is applied.
func (s GreetingService) Greet(_ context.Context, name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}
