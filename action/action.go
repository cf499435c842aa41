// Package action holds the "take action" modal: which tab and media type are
// active, the collected fields, and the submit step.
package action

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tab is a top-level section of the modal.
type Tab string

const (
	TabVibe    Tab = "Vibe"
	TabConnect Tab = "Connect"
	TabPerform Tab = "Perform"
)

// Tabs in display order.
var Tabs = []Tab{TabVibe, TabConnect, TabPerform}

// Media is the kind of post being composed.
type Media string

const (
	MediaPhoto    Media = "photo"
	MediaShoutout Media = "shoutout"
	MediaPoll     Media = "poll"
	MediaSuggest  Media = "suggest"
	MediaFiles    Media = "files"
)

// MediaOption is one tile in the media picker.
type MediaOption struct {
	ID     Media  `json:"id"`
	Icon   string `json:"icon"`
	Label  string `json:"label"`
	Submit string `json:"submit_label"`
}

// MediaOptions in display order.
var MediaOptions = []MediaOption{
	{ID: MediaPhoto, Icon: "📷", Label: "Photo", Submit: "Share photo"},
	{ID: MediaShoutout, Icon: "⭐", Label: "Shoutout", Submit: "Give shoutout"},
	{ID: MediaPoll, Icon: "📋", Label: "Poll", Submit: "Create poll"},
	{ID: MediaSuggest, Icon: "🎤", Label: "Suggest", Submit: "Send suggestion"},
	{ID: MediaFiles, Icon: "📝", Label: "Files", Submit: "Share files"},
}

// Form is what the modal has collected so far.
type Form struct {
	Tab           Tab    `json:"tab"`
	Media         Media  `json:"media"`
	User          string `json:"user"`
	CompanyValues string `json:"company_values"`
	Impact        string `json:"impact"`
	Team          string `json:"team"`
}

// NewForm opens on the Vibe tab composing a shoutout.
func NewForm() Form {
	return Form{Tab: TabVibe, Media: MediaShoutout}
}

// WithTab switches tab. Unknown tabs leave the form unchanged.
func (f Form) WithTab(tab string) Form {
	if slices.Contains(Tabs, Tab(tab)) {
		f.Tab = Tab(tab)
	}
	return f
}

// WithMedia switches media. Unknown media leave the form unchanged.
func (f Form) WithMedia(media string) Form {
	if _, ok := lookupMedia(Media(media)); ok {
		f.Media = Media(media)
	}
	return f
}

// SubmitLabel is the caption of the submit button for the current media.
func (f Form) SubmitLabel() string {
	if opt, ok := lookupMedia(f.Media); ok {
		return opt.Submit
	}
	return "Submit"
}

func lookupMedia(m Media) (MediaOption, bool) {
	i := slices.IndexFunc(MediaOptions, func(o MediaOption) bool { return o.ID == m })
	if i < 0 {
		return MediaOption{}, false
	}
	return MediaOptions[i], true
}

// Submission is a submitted form.
type Submission struct {
	ID          string    `json:"id"`
	Form        Form      `json:"form"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Recorder accepts submissions. Nothing is stored or sent anywhere; each
// submission is only logged.
type Recorder struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder returns a Recorder logging to logger.
func NewRecorder(logger *zap.Logger) *Recorder {
	return &Recorder{logger: logger, now: time.Now}
}

// Submit normalises tab and media, logs the form and returns it stamped.
func (r *Recorder) Submit(f Form) Submission {
	f = NewForm().WithTab(string(f.Tab)).WithMedia(string(f.Media)).withFields(f)
	sub := Submission{
		ID:          uuid.NewString(),
		Form:        f,
		SubmittedAt: r.now().UTC(),
	}
	r.logger.Info("take action submitted",
		zap.String("id", sub.ID),
		zap.String("tab", string(f.Tab)),
		zap.String("media", string(f.Media)),
		zap.String("user", f.User),
		zap.String("company_values", f.CompanyValues),
		zap.String("impact", f.Impact),
		zap.String("team", f.Team),
	)
	return sub
}

func (f Form) withFields(src Form) Form {
	f.User = src.User
	f.CompanyValues = src.CompanyValues
	f.Impact = src.Impact
	f.Team = src.Team
	return f
}
