package handler

import (
	"errors"
	"net/http"
	"testing"

	"Gather_Hub/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestErrStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: service.ErrValidation, want: http.StatusBadRequest},
		{name: "temporal", err: service.ErrPastDate, want: http.StatusBadRequest},
		{name: "not found", err: service.ErrNotFound, want: http.StatusNotFound},
		{name: "not organizer", err: service.ErrNotOrganizer, want: http.StatusUnauthorized},
		{name: "slot conflict", err: service.ErrSlotTaken, want: http.StatusConflict},
		{name: "infrastructure passthrough", err: errors.New("dial tcp: timeout"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errStatus(tt.err))
		})
	}
}
