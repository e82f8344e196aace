package ekdsend

import (
	"fmt"
	"strconv"
	"time"
)

// Email is the API's email object.
type Email struct {
	ID          string         `json:"id"`
	Status      string         `json:"status"`
	From        string         `json:"from,omitempty"`
	To          []string       `json:"to,omitempty"`
	CC          []string       `json:"cc,omitempty"`
	BCC         []string       `json:"bcc,omitempty"`
	Subject     string         `json:"subject,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ScheduledAt *time.Time     `json:"scheduled_at,omitempty"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
}

// SMS is the API's SMS object.
type SMS struct {
	ID          string         `json:"id"`
	Status      string         `json:"status"`
	To          string         `json:"to,omitempty"`
	From        string         `json:"from,omitempty"`
	Message     string         `json:"message,omitempty"`
	Segments    int            `json:"segments,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ScheduledAt *time.Time     `json:"scheduled_at,omitempty"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
}

// Call is the API's voice call object.
type Call struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	To        string         `json:"to,omitempty"`
	From      string         `json:"from,omitempty"`
	Duration  int            `json:"duration,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
}

// Recording describes the audio captured for a call.
type Recording struct {
	URL       string     `json:"url"`
	Duration  int        `json:"duration"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Pagination is returned next to "data" by list endpoints.
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type EmailList struct {
	Data []Email `json:"data"`
	Pagination
}

type SMSList struct {
	Data []SMS `json:"data"`
	Pagination
}

type CallList struct {
	Data []Call `json:"data"`
	Pagination
}

// Attachment is a file sent with an email. Content is base64 encoded.
type Attachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content,omitempty"`
	Path        string `json:"path,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// ListParams filters a list call. Limit defaults to 20.
type ListParams struct {
	Limit    int
	Offset   int
	Status   string
	FromDate string
	ToDate   string
}

const defaultListLimit = 20

func (p *ListParams) values() map[string]string {
	q := map[string]string{}
	limit, offset := defaultListLimit, 0
	if p != nil {
		if p.Limit > 0 {
			limit = p.Limit
		}
		if p.Offset > 0 {
			offset = p.Offset
		}
		if p.Status != "" {
			q["status"] = p.Status
		}
		if p.FromDate != "" {
			q["from_date"] = p.FromDate
		}
		if p.ToDate != "" {
			q["to_date"] = p.ToDate
		}
	}
	q["limit"] = strconv.Itoa(limit)
	q["offset"] = strconv.Itoa(offset)
	return q
}

func decodeData[T any](resp NormalizedResponse, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	v := new(T)
	if err := resp.DecodeData(v); err != nil {
		return nil, fmt.Errorf("ekdsend: decode response: %w", err)
	}
	return v, nil
}

func decodeBody[T any](resp NormalizedResponse, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	v := new(T)
	if err := resp.Decode(v); err != nil {
		return nil, fmt.Errorf("ekdsend: decode response: %w", err)
	}
	return v, nil
}
