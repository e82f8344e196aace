package ekdsend

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// EmailsService calls the /emails endpoints.
type EmailsService struct {
	client *Client
}

// SendEmailParams is the body of POST /emails. Unset optional fields are left out of the JSON.
type SendEmailParams struct {
	From        string            `json:"from"`
	To          []string          `json:"to"`
	Subject     string            `json:"subject"`
	HTML        string            `json:"html,omitempty"`
	Text        string            `json:"text,omitempty"`
	CC          []string          `json:"cc,omitempty"`
	BCC         []string          `json:"bcc,omitempty"`
	ReplyTo     string            `json:"reply_to,omitempty"`
	Attachments []Attachment      `json:"attachments,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
	ScheduledAt *time.Time        `json:"scheduled_at,omitempty"`
}

func (p *SendEmailParams) validate() error {
	if p == nil {
		return invalidParams("email params are required")
	}
	if strings.TrimSpace(p.From) == "" {
		return invalidParams("from is required")
	}
	if len(p.To) == 0 {
		return invalidParams("at least one recipient is required")
	}
	if strings.TrimSpace(p.Subject) == "" {
		return invalidParams("subject is required")
	}
	return nil
}

// ListEmailsParams filters GET /emails. Tags are sent comma separated.
type ListEmailsParams struct {
	ListParams
	Tags []string
}

// Send queues an email and returns it with its id and status.
func (s *EmailsService) Send(ctx context.Context, params *SendEmailParams) (*Email, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return decodeData[Email](s.client.Request(ctx, http.MethodPost, "/emails", params))
}

func (s *EmailsService) Get(ctx context.Context, id string) (*Email, error) {
	path, err := resourcePath("/emails", id)
	if err != nil {
		return nil, err
	}
	return decodeData[Email](s.client.Request(ctx, http.MethodGet, path, nil))
}

// List returns one page of emails together with the pagination counters.
func (s *EmailsService) List(ctx context.Context, params *ListEmailsParams) (*EmailList, error) {
	var lp *ListParams
	var tags []string
	if params != nil {
		lp = &params.ListParams
		tags = params.Tags
	}
	q := lp.values()
	if len(tags) > 0 {
		q["tags"] = strings.Join(tags, ",")
	}

	return decodeBody[EmailList](s.client.Request(ctx, http.MethodGet, "/emails", q))
}

// Cancel cancels a scheduled email.
func (s *EmailsService) Cancel(ctx context.Context, id string) (*Email, error) {
	path, err := resourcePath("/emails", id)
	if err != nil {
		return nil, err
	}
	return decodeData[Email](s.client.Request(ctx, http.MethodDelete, path, nil))
}

func resourcePath(collection, id string, sub ...string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", invalidParams("id is required")
	}
	parts := append([]string{collection, url.PathEscape(id)}, sub...)
	return strings.Join(parts, "/"), nil
}
