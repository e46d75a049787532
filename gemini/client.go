package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"omninote-api/models"

	"google.golang.org/genai"
)

// DefaultModel is used when GEMINI_MODEL is not configured.
const DefaultModel = "gemini-3-flash-preview"

// Client implements Service against the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient builds a Gemini-backed gateway. The API key is required; model
// falls back to DefaultModel when empty.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: c, model: model}, nil
}

func (c *Client) SummarizeNote(ctx context.Context, content string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text("Summarize the following note content concisely: "+content), nil)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return responseText(resp), nil
}

func (c *Client) ExtractTextFromImage(ctx context.Context, payload string) (string, error) {
	data, mimeType, err := decodeImagePayload(payload)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			{Text: "Transcribe all text from this image perfectly. If it's a document, preserve the structure. If it's a photo of notes or a whiteboard, extract the text and clean it up for inclusion in a professional notebook."},
		},
	}}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return responseText(resp), nil
}

func (c *Client) ProcessMeetingAudio(ctx context.Context, audio []byte, mimeType string) (*MeetingResult, error) {
	if mimeType == "" {
		mimeType = "audio/wav"
	}
	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
			{Text: "Please transcribe this meeting audio. Then, provide a professional summary (Meeting Minutes) and extract specific action items per individual. Format the response as JSON."},
		},
	}}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   meetingSchema(),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	return parseMeetingResult([]byte(responseText(resp)))
}

// meetingSchema fixes the three-field structured output contract.
func meetingSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"transcript": {Type: genai.TypeString},
			"minutes":    {Type: genai.TypeString},
			"actionItems": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"owner":    {Type: genai.TypeString},
						"task":     {Type: genai.TypeString},
						"deadline": {Type: genai.TypeString},
					},
					Required: []string{"owner", "task"},
				},
			},
		},
		Required: []string{"transcript", "minutes", "actionItems"},
	}
}

// parseMeetingResult validates the structured payload against the schema
// contract. Absent required fields are an error, not a zero value: a response
// without actionItems must not yield a meeting note that merely looks complete.
func parseMeetingResult(raw []byte) (*MeetingResult, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, fmt.Errorf("transcription failed: %w: empty payload", ErrBadResponse)
	}
	var probe struct {
		Transcript  *string              `json:"transcript"`
		Minutes     *string              `json:"minutes"`
		ActionItems *[]models.ActionItem `json:"actionItems"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("transcription failed: %w: %v", ErrBadResponse, err)
	}
	if probe.Transcript == nil || probe.Minutes == nil || probe.ActionItems == nil {
		return nil, fmt.Errorf("transcription failed: %w: missing required field", ErrBadResponse)
	}
	return &MeetingResult{
		Transcript:  *probe.Transcript,
		Minutes:     *probe.Minutes,
		ActionItems: *probe.ActionItems,
	}, nil
}

// decodeImagePayload accepts a data URL or bare base64 and returns raw bytes
// plus the MIME type inferred from the data URL prefix (png or jpeg).
func decodeImagePayload(payload string) ([]byte, string, error) {
	mimeType := "image/jpeg"
	if strings.Contains(payload, "image/png") {
		mimeType = "image/png"
	}
	b64 := payload
	if i := strings.Index(payload, ","); i >= 0 {
		b64 = payload[i+1:]
	}
	data, err := base64Decode(b64)
	if err != nil {
		return nil, "", fmt.Errorf("decode image payload: %w", err)
	}
	return data, mimeType, nil
}

// base64Decode tolerates payloads with or without padding; browser encoders
// differ here.
func base64Decode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
