package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"Sightings/internal/core/storeerr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		wantUnavailable bool
		wantPermission  bool
	}{
		{"nil", nil, false, false},
		{"plain", errors.New("boom"), false, false},
		{"insufficient privilege", &pq.Error{Code: "42501"}, false, true},
		{"invalid password", &pq.Error{Code: "28P01"}, false, true},
		{"connection failure", &pq.Error{Code: "08006"}, true, false},
		{"syntax error", &pq.Error{Code: "42601"}, false, false},
		{"dial failure", &net.OpError{Op: "dial", Err: errors.New("refused")}, true, false},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.Equal(t, tt.wantUnavailable, storeerr.IsUnavailable(got))
			assert.Equal(t, tt.wantPermission, storeerr.IsPermissionDenied(got))
			if tt.err != nil {
				assert.ErrorIs(t, got, tt.err)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("duplicate key")))
}
