package commands

import (
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	ekdsend "github.com/ekddigital/ekdsend-go"
)

func emailCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Send and inspect emails",
	}
	cmd.AddCommand(emailSendCmd(a), emailGetCmd(a), emailListCmd(a), emailCancelCmd(a))
	return cmd
}

func emailSendCmd(a *app) *cobra.Command {
	var p ekdsend.SendEmailParams
	var scheduledAt string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scheduledAt != "" {
				t, err := time.Parse(time.RFC3339, scheduledAt)
				if err != nil {
					return err
				}
				p.ScheduledAt = &t
			}
			email, err := a.client.Emails.Send(cmd.Context(), &p)
			if err != nil {
				return err
			}
			return a.render(email, func(t *uitable.Table) { emailRows(t, *email) })
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.From, "from", "", "verified sender address")
	f.StringSliceVar(&p.To, "to", nil, "recipient (repeatable)")
	f.StringVar(&p.Subject, "subject", "", "subject line")
	f.StringVar(&p.HTML, "html", "", "HTML body")
	f.StringVar(&p.Text, "text", "", "plain text body")
	f.StringSliceVar(&p.CC, "cc", nil, "CC recipient (repeatable)")
	f.StringSliceVar(&p.BCC, "bcc", nil, "BCC recipient (repeatable)")
	f.StringVar(&p.ReplyTo, "reply-to", "", "reply-to address")
	f.StringSliceVar(&p.Tags, "tag", nil, "tag (repeatable)")
	f.StringVar(&scheduledAt, "scheduled-at", "", "RFC 3339 send time")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func emailGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := a.client.Emails.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(email, func(t *uitable.Table) { emailRows(t, *email) })
		},
	}
}

func emailListCmd(a *app) *cobra.Command {
	var p ekdsend.ListEmailsParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List emails",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.Emails.List(cmd.Context(), &p)
			if err != nil {
				return err
			}
			return a.render(list, func(t *uitable.Table) {
				emailRows(t, list.Data...)
				pageRow(t, list.Pagination)
			})
		},
	}
	listFlags(cmd, &p.ListParams)
	cmd.Flags().StringSliceVar(&p.Tags, "tag", nil, "only emails with this tag (repeatable)")
	return cmd
}

func emailCancelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a scheduled email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := a.client.Emails.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(email, func(t *uitable.Table) { emailRows(t, *email) })
		},
	}
}

func listFlags(cmd *cobra.Command, p *ekdsend.ListParams) {
	f := cmd.Flags()
	f.IntVar(&p.Limit, "limit", 20, "page size (max 100)")
	f.IntVar(&p.Offset, "offset", 0, "page offset")
	f.StringVar(&p.Status, "status", "", "filter by status")
	f.StringVar(&p.FromDate, "from-date", "", "ISO 8601 lower bound")
	f.StringVar(&p.ToDate, "to-date", "", "ISO 8601 upper bound")
}
