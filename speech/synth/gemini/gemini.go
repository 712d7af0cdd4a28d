// Package gemini synthesizes speech through the Gemini API using its
// prebuilt TTS voices.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"

	"github.com/utter-tts/utter/speech/synth"
)

// DefaultModel is the TTS-capable Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash-preview-tts"

// Engine is a synth.Synthesizer backed by the Gemini API.
type Engine struct {
	client *genai.Client
	model  string
	apiKey string
}

// New builds a Gemini engine. The model may be empty to use DefaultModel.
func New(ctx context.Context, apiKey, model string) (*Engine, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Engine{client: client, model: model, apiKey: apiKey}, nil
}

// Name identifies the engine.
func (e *Engine) Name() string { return "gemini" }

// Validate fails fast when no credential is configured.
func (e *Engine) Validate() error {
	if e.apiKey == "" {
		return fmt.Errorf("gemini: %w (set GEMINI_API_KEY)", synth.ErrNoAPIKey)
	}
	return nil
}

// Synthesize requests a single audio response for the prompt and returns
// the inline PCM payload re-encoded as base64, the service wire format.
func (e *Engine) Synthesize(ctx context.Context, req synth.Request) (*synth.Result, error) {
	model := req.Model
	if model == "" {
		model = e.model
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: req.Voice,
				},
			},
		},
	}

	log.Debug("gemini synthesis request", "model", model, "voice", req.Voice, "chars", len(req.Text))

	resp, err := e.client.Models.GenerateContent(ctx, model, genai.Text(req.Text), cfg)
	if err != nil {
		return nil, e.wrapError(err)
	}

	blob, err := audioBlob(resp)
	if err != nil {
		return nil, &synth.Error{Engine: e.Name(), Message: err.Error(), Err: err}
	}

	log.Debug("gemini synthesis response", "mime", blob.MIMEType, "bytes", len(blob.Data))

	return &synth.Result{
		Audio:  base64.StdEncoding.EncodeToString(blob.Data),
		MIME:   blob.MIMEType,
		Engine: e.Name(),
	}, nil
}

// audioBlob extracts the inline audio part from the first candidate.
func audioBlob(resp *genai.GenerateContentResponse) (*genai.Blob, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errors.New("no candidates in response")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return nil, fmt.Errorf("candidate has no content (finish reason %s)", cand.FinishReason)
	}
	for _, p := range cand.Content.Parts {
		if p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData, nil
		}
	}
	return nil, errors.New("no audio part in response")
}

// wrapError converts transport failures into a synth.Error, pulling the
// HTTP status out of API errors where available.
func (e *Engine) wrapError(err error) error {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return &synth.Error{
			Engine:  e.Name(),
			Code:    strconv.Itoa(apiErr.HTTPCode()),
			Message: apiErr.Error(),
			Err:     apiErr.Unwrap(),
		}
	}
	return &synth.Error{Engine: e.Name(), Message: "synthesis request failed", Err: err}
}
