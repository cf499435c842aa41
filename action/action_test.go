package action

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewForm(t *testing.T) {
	f := NewForm()
	assert.Equal(t, TabVibe, f.Tab)
	assert.Equal(t, MediaShoutout, f.Media)
	assert.Equal(t, "Give shoutout", f.SubmitLabel())
}

func TestWithTab(t *testing.T) {
	f := NewForm().WithTab("Perform")
	assert.Equal(t, TabPerform, f.Tab)
	assert.Equal(t, TabPerform, f.WithTab("Nope").Tab)
	assert.Equal(t, TabPerform, f.WithTab("").Tab)
}

func TestWithMedia(t *testing.T) {
	tests := []struct {
		media string
		want  Media
		label string
	}{
		{"photo", MediaPhoto, "Share photo"},
		{"poll", MediaPoll, "Create poll"},
		{"suggest", MediaSuggest, "Send suggestion"},
		{"files", MediaFiles, "Share files"},
		{"video", MediaShoutout, "Give shoutout"},
	}
	for _, tt := range tests {
		t.Run(tt.media, func(t *testing.T) {
			f := NewForm().WithMedia(tt.media)
			assert.Equal(t, tt.want, f.Media)
			assert.Equal(t, tt.label, f.SubmitLabel())
		})
	}
	assert.Equal(t, "Submit", Form{Media: "video"}.SubmitLabel())
}

func TestSubmitLogsFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	rec := NewRecorder(zap.New(core))
	fixed := time.Date(2026, time.March, 2, 9, 30, 0, 0, time.FixedZone("x", 3600))
	rec.now = func() time.Time { return fixed }

	sub := rec.Submit(Form{
		Tab:           TabConnect,
		Media:         "bogus",
		User:          "dana",
		CompanyValues: "Ownership",
		Impact:        "Unblocked the release",
		Team:          "Sales",
	})

	_, err := uuid.Parse(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, fixed.UTC(), sub.SubmittedAt)
	assert.Equal(t, TabConnect, sub.Form.Tab)
	assert.Equal(t, MediaShoutout, sub.Form.Media)

	entries := logs.FilterMessage("take action submitted").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, sub.ID, fields["id"])
	assert.Equal(t, "Connect", fields["tab"])
	assert.Equal(t, "shoutout", fields["media"])
	assert.Equal(t, "dana", fields["user"])
	assert.Equal(t, "Ownership", fields["company_values"])
	assert.Equal(t, "Unblocked the release", fields["impact"])
	assert.Equal(t, "Sales", fields["team"])
}

func TestSubmitDefaultsEmptyForm(t *testing.T) {
	sub := NewRecorder(zap.NewNop()).Submit(Form{})
	assert.Equal(t, TabVibe, sub.Form.Tab)
	assert.Equal(t, MediaShoutout, sub.Form.Media)

	other := NewRecorder(zap.NewNop()).Submit(Form{})
	assert.NotEqual(t, sub.ID, other.ID)
}
