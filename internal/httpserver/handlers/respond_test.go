package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrSnakeDoc/patisserie/internal/httpserver/deps"
	"github.com/MrSnakeDoc/patisserie/internal/logger"
	"github.com/MrSnakeDoc/patisserie/internal/repository"
)

func TestFailStatus(t *testing.T) {
	d := deps.Deps{Logger: logger.Nop()}

	tests := []struct {
		name      string
		err       error
		want      int
		wantEmpty bool
	}{
		{
			name: "repository error",
			err:  fmt.Errorf("failed to load bookmark %q: %w", "about", &repository.Error{Op: "entry", StatusCode: 500}),
			want: http.StatusBadGateway,
		},
		{name: "deadline", err: context.DeadlineExceeded, want: http.StatusGatewayTimeout},
		{
			name: "repository timeout",
			err:  &repository.Error{Op: "search", Err: context.DeadlineExceeded},
			want: http.StatusGatewayTimeout,
		},
		{name: "client gone", err: context.Canceled, want: http.StatusOK, wantEmpty: true},
		{name: "anything else", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			fail(rec, httptest.NewRequest(http.MethodGet, "/", nil), d, tt.err)

			assert.Equal(t, tt.want, rec.Code)
			if tt.wantEmpty {
				assert.Empty(t, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}
