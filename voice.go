package ekdsend

import (
	"context"
	"net/http"
)

const (
	DefaultVoice    = "alloy"
	DefaultLanguage = "en-US"
)

// CallsService calls the /calls endpoints.
type CallsService struct {
	client *Client
}

// CreateCallParams is the body of POST /calls. One of TTSMessage or AudioURL is required.
// Voice, Language, Record and MachineDetection are always sent.
type CreateCallParams struct {
	To               string         `json:"to"`
	From             string         `json:"from"`
	TTSMessage       string         `json:"tts_message,omitempty"`
	AudioURL         string         `json:"audio_url,omitempty"`
	Voice            string         `json:"voice"`
	Language         string         `json:"language"`
	Record           bool           `json:"record"`
	MachineDetection bool           `json:"machine_detection"`
	WebhookURL       string         `json:"webhook_url,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// Create places an outbound call.
func (s *CallsService) Create(ctx context.Context, params *CreateCallParams) (*Call, error) {
	if params == nil {
		return nil, invalidParams("call params are required")
	}
	if params.TTSMessage == "" && params.AudioURL == "" {
		return nil, invalidParams("either tts_message or audio_url is required")
	}

	body := *params
	var err error
	if body.To, err = phoneNumber("to", body.To); err != nil {
		return nil, err
	}
	if body.From, err = phoneNumber("from", body.From); err != nil {
		return nil, err
	}
	if body.Voice == "" {
		body.Voice = DefaultVoice
	}
	if body.Language == "" {
		body.Language = DefaultLanguage
	}
	return decodeData[Call](s.client.Request(ctx, http.MethodPost, "/calls", &body))
}

func (s *CallsService) Get(ctx context.Context, id string) (*Call, error) {
	path, err := resourcePath("/calls", id)
	if err != nil {
		return nil, err
	}
	return decodeData[Call](s.client.Request(ctx, http.MethodGet, path, nil))
}

func (s *CallsService) List(ctx context.Context, params *ListParams) (*CallList, error) {
	return decodeBody[CallList](s.client.Request(ctx, http.MethodGet, "/calls", params.values()))
}

// Hangup ends an active call.
func (s *CallsService) Hangup(ctx context.Context, id string) (*Call, error) {
	path, err := resourcePath("/calls", id)
	if err != nil {
		return nil, err
	}
	return decodeData[Call](s.client.Request(ctx, http.MethodDelete, path, nil))
}

func (s *CallsService) GetRecording(ctx context.Context, id string) (*Recording, error) {
	path, err := resourcePath("/calls", id, "recording")
	if err != nil {
		return nil, err
	}
	return decodeData[Recording](s.client.Request(ctx, http.MethodGet, path, nil))
}
