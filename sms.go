package ekdsend

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/ekddigital/ekdsend-go/internal"
)

// SMSService calls the /sms endpoints.
type SMSService struct {
	client *Client
}

// SendSMSParams is the body of POST /sms. Numbers are normalized to E.164 before sending.
type SendSMSParams struct {
	To          string         `json:"to"`
	Message     string         `json:"message"`
	From        string         `json:"from,omitempty"`
	ScheduledAt *time.Time     `json:"scheduled_at,omitempty"`
	WebhookURL  string         `json:"webhook_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Send queues a text message.
func (s *SMSService) Send(ctx context.Context, params *SendSMSParams) (*SMS, error) {
	if params == nil {
		return nil, invalidParams("sms params are required")
	}
	if strings.TrimSpace(params.Message) == "" {
		return nil, invalidParams("message is required")
	}
	body := *params
	var err error
	if body.To, err = phoneNumber("to", body.To); err != nil {
		return nil, err
	}
	if body.From != "" {
		if body.From, err = phoneNumber("from", body.From); err != nil {
			return nil, err
		}
	}
	return decodeData[SMS](s.client.Request(ctx, http.MethodPost, "/sms", &body))
}

func (s *SMSService) Get(ctx context.Context, id string) (*SMS, error) {
	path, err := resourcePath("/sms", id)
	if err != nil {
		return nil, err
	}
	return decodeData[SMS](s.client.Request(ctx, http.MethodGet, path, nil))
}

func (s *SMSService) List(ctx context.Context, params *ListParams) (*SMSList, error) {
	return decodeBody[SMSList](s.client.Request(ctx, http.MethodGet, "/sms", params.values()))
}

// Cancel cancels a scheduled message.
func (s *SMSService) Cancel(ctx context.Context, id string) (*SMS, error) {
	path, err := resourcePath("/sms", id)
	if err != nil {
		return nil, err
	}
	return decodeData[SMS](s.client.Request(ctx, http.MethodDelete, path, nil))
}

func phoneNumber(field, number string) (string, error) {
	if strings.TrimSpace(number) == "" {
		return "", invalidParams("%s is required", field)
	}
	n, err := internal.NormalizeE164(number)
	if err != nil {
		return "", invalidParams("%s: %v", field, err)
	}
	return n, nil
}
