package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gosuri/uitable"

	ekdsend "github.com/ekddigital/ekdsend-go"
)

// render writes v as indented JSON or, by default, as the table built by fill.
func (a *app) render(v any, fill func(t *uitable.Table)) error {
	if a.cfg.Output == "json" {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.out, string(b))
		return err
	}

	t := uitable.New()
	t.MaxColWidth = 60
	t.Wrap = true
	fill(t)
	_, err := fmt.Fprintln(a.out, t.String())
	return err
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func emailRows(t *uitable.Table, emails ...ekdsend.Email) {
	t.AddRow("ID", "STATUS", "FROM", "TO", "SUBJECT", "CREATED")
	for _, e := range emails {
		t.AddRow(e.ID, e.Status, e.From, strings.Join(e.To, ","), e.Subject, fmtTime(e.CreatedAt))
	}
}

func smsRows(t *uitable.Table, msgs ...ekdsend.SMS) {
	t.AddRow("ID", "STATUS", "TO", "FROM", "SEGMENTS", "CREATED")
	for _, m := range msgs {
		t.AddRow(m.ID, m.Status, m.To, m.From, m.Segments, fmtTime(m.CreatedAt))
	}
}

func callRows(t *uitable.Table, calls ...ekdsend.Call) {
	t.AddRow("ID", "STATUS", "TO", "FROM", "DURATION", "CREATED")
	for _, c := range calls {
		t.AddRow(c.ID, c.Status, c.To, c.From, c.Duration, fmtTime(c.CreatedAt))
	}
}

func pageRow(t *uitable.Table, p ekdsend.Pagination) {
	t.AddRow("")
	t.AddRow(pageSummary(p))
}

func pageSummary(p ekdsend.Pagination) string {
	end := min(p.Offset+p.Limit, p.Total)
	if end <= p.Offset {
		return fmt.Sprintf("no results at offset %d (total %d)", p.Offset, p.Total)
	}
	return fmt.Sprintf("showing %d-%d of %d", p.Offset+1, end, p.Total)
}
