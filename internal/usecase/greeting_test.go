package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGreetingService_Username(t *testing.T) {
	svc := NewGreetingService("sourav")
	require.Equal(t, "sourav", svc.Username(context.Background()))
}

func TestGreetingService_Greet(t *testing.T) {
	svc := NewGreetingService("sourav")
	cases := map[string]string{
		"Alice":      "Hello, Alice!",
		"":           "Hello, !",
		"<b>Bob</b>": "Hello, <b>Bob</b>!",
		"Zoë & 100%": "Hello, Zoë & 100%!",
		"a/b":        "Hello, a/b!",
	}
	for in, want := range cases {
		require.Equal(t, want, svc.Greet(context.Background(), in))
	}
	// Stateless: identical input gives identical output.
	require.Equal(t, svc.Greet(context.Background(), "Alice"), svc.Greet(context.Background(), "Alice"))
}
