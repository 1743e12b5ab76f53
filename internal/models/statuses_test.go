package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusDraft.CanTransition(StatusSubmitted))
	assert.True(t, StatusSubmitted.CanTransition(StatusReviewing))
	assert.True(t, StatusReviewing.CanTransition(StatusApproved))
	assert.True(t, StatusReviewing.CanTransition(StatusRejected))

	// No backward or skipping moves
	assert.False(t, StatusDraft.CanTransition(StatusReviewing))
	assert.False(t, StatusDraft.CanTransition(StatusApproved))
	assert.False(t, StatusSubmitted.CanTransition(StatusDraft))
	assert.False(t, StatusReviewing.CanTransition(StatusSubmitted))

	// Terminal states stay terminal
	assert.False(t, StatusApproved.CanTransition(StatusRejected))
	assert.False(t, StatusRejected.CanTransition(StatusReviewing))
}

func TestApplicationAge(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	app := &Application{Dob: time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 18, app.Age(now))

	app.Dob = time.Date(2008, 6, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 17, app.Age(now), "birthday tomorrow still counts as 17")
}

func TestIsEditable(t *testing.T) {
	app := &Application{Status: StatusDraft}
	assert.True(t, app.IsEditable())

	for _, s := range []ApplicationStatus{StatusSubmitted, StatusReviewing, StatusApproved, StatusRejected} {
		app.Status = s
		assert.False(t, app.IsEditable())
	}
}
