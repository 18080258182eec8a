package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionStatusTransitions(t *testing.T) {
	cases := []struct {
		from    SubmissionStatus
		to      SubmissionStatus
		allowed bool
	}{
		{StatusDraft, StatusReady, true},
		{StatusReady, StatusSubmitted, true},
		{StatusReady, StatusRejected, true},
		{StatusSubmitted, StatusRejected, true},

		// Strict ordering: draft may not skip ready.
		{StatusDraft, StatusSubmitted, false},
		{StatusDraft, StatusRejected, false},

		// No backward transitions.
		{StatusSubmitted, StatusDraft, false},
		{StatusSubmitted, StatusReady, false},
		{StatusReady, StatusDraft, false},

		// Rejected is terminal.
		{StatusRejected, StatusDraft, false},
		{StatusRejected, StatusReady, false},
		{StatusRejected, StatusSubmitted, false},

		// Self transitions are never legal.
		{StatusDraft, StatusDraft, false},
		{StatusSubmitted, StatusSubmitted, false},
	}

	for _, tc := range cases {
		t.Run(tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestSubmissionStatusTerminal(t *testing.T) {
	assert.False(t, StatusDraft.Terminal())
	assert.False(t, StatusReady.Terminal())
	assert.False(t, StatusSubmitted.Terminal())
	assert.True(t, StatusRejected.Terminal())
}

func TestSubmissionStatusClosedSet(t *testing.T) {
	// Unrecognized values must be rejected, not silently accepted.
	_, err := SubmissionStatusString("pending")
	require.Error(t, err)

	parsed, err := SubmissionStatusString("ready")
	require.NoError(t, err)
	assert.Equal(t, StatusReady, parsed)

	var s SubmissionStatus
	require.Error(t, s.Scan("bogus"))
	require.NoError(t, s.Scan("submitted"))
	assert.Equal(t, StatusSubmitted, s)
}

func TestKindClosedSet(t *testing.T) {
	k, err := KindString("experiment")
	require.NoError(t, err)
	assert.Equal(t, KindExperiment, k)

	_, err = KindString("study")
	require.Error(t, err)
}
