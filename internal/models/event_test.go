package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventStatus_CanTransitionTo(t *testing.T) {
	all := []EventStatus{
		EventStatusDraft, EventStatusActive, EventStatusPaused, EventStatusCompleted, EventStatusCancelled,
	}
	allowed := map[EventStatus]map[EventStatus]bool{
		EventStatusDraft:  {EventStatusActive: true, EventStatusCancelled: true},
		EventStatusActive: {EventStatusPaused: true, EventStatusCompleted: true, EventStatusCancelled: true},
		EventStatusPaused: {EventStatusActive: true, EventStatusCompleted: true, EventStatusCancelled: true},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestEventStatus_Terminal(t *testing.T) {
	tests := []struct {
		status   EventStatus
		terminal bool
	}{
		{EventStatusDraft, false},
		{EventStatusActive, false},
		{EventStatusPaused, false},
		{EventStatusCompleted, true},
		{EventStatusCancelled, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.True(t, tt.status.IsValid())
			if tt.terminal {
				assert.False(t, tt.status.CanTransitionTo(EventStatusActive))
			}
		})
	}
	assert.False(t, EventStatus("archived").IsValid())
}
