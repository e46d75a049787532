// Package gemini is the gateway to the external generative model. Each
// operation is a single blocking round trip: no retries, no streaming, no
// gateway-imposed timeout. Failures surface as one error to the caller, which
// converts them into a user-visible message.
package gemini

import (
	"context"
	"errors"

	"omninote-api/models"
)

// ErrBadResponse marks an empty or shape-violating structured response. The
// structured transcription call is the only one with a strict shape contract;
// a payload missing a required field must fail loudly rather than silently
// producing an empty result that looks successful.
var ErrBadResponse = errors.New("malformed model response")

// MeetingResult is the structured output of the transcription call.
type MeetingResult struct {
	Transcript  string              `json:"transcript"`
	Minutes     string              `json:"minutes"`
	ActionItems []models.ActionItem `json:"actionItems"`
}

// Service is the gateway surface consumed by handlers. All three operations
// are pure from the domain collections' perspective; they return data and the
// caller decides how to merge it into a note.
type Service interface {
	// SummarizeNote produces a concise summary of the note content. The
	// response is opaque text; missing content yields an empty string.
	SummarizeNote(ctx context.Context, content string) (string, error)

	// ExtractTextFromImage transcribes the text visible in one encoded image
	// payload (a data URL or bare base64). Opaque text response.
	ExtractTextFromImage(ctx context.Context, payload string) (string, error)

	// ProcessMeetingAudio transcribes meeting audio and extracts structured
	// minutes and per-person action items.
	ProcessMeetingAudio(ctx context.Context, audio []byte, mimeType string) (*MeetingResult, error)
}
