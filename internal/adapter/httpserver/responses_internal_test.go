package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fairyhunter13/otel-greeter/internal/domain"
)

type respErr struct {
	Error string `json:"error"`
}

func Test_writeError_Mapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"notfound", domain.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"notfound_wrapped", fmt.Errorf("op=x: %w", domain.ErrNotFound), http.StatusNotFound, "Not Found"},
		{"rate", domain.ErrRateLimited, http.StatusTooManyRequests, "Too Many Requests"},
		{"internal", domain.ErrInternal, http.StatusInternalServerError, "Internal Server Error"},
		{"unknown", assertError("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			rw := httptest.NewRecorder()
			writeError(rw, r, c.err)
			res := rw.Result()
			if res.StatusCode != c.wantStatus {
				t.Fatalf("status: got %d want %d", res.StatusCode, c.wantStatus)
			}
			if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Fatalf("content-type: %q", ct)
			}
			var e respErr
			_ = json.NewDecoder(res.Body).Decode(&e)
			_ = res.Body.Close()
			if e.Error != c.wantBody {
				t.Fatalf("body: got %q want %q", e.Error, c.wantBody)
			}
			if strings.Contains(rw.Body.String(), "boom") {
				t.Fatal("error details must not leak to the client")
			}
		})
	}
}

func Test_writeJSON_NoHTMLEscaping(t *testing.T) {
	rw := httptest.NewRecorder()
	writeJSON(rw, http.StatusOK, greetingResponse{Message: "Hello, <b>&</b>!"})
	if got := strings.TrimSpace(rw.Body.String()); got != `{"message":"Hello, <b>&</b>!"}` {
		t.Fatalf("got %s", got)
	}
}

type assertError string

func (a assertError) Error() string { return string(a) }
