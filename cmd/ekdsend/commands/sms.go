package commands

import (
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	ekdsend "github.com/ekddigital/ekdsend-go"
)

func smsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sms",
		Short: "Send and inspect text messages",
	}
	cmd.AddCommand(smsSendCmd(a), smsGetCmd(a), smsListCmd(a), smsCancelCmd(a))
	return cmd
}

func smsSendCmd(a *app) *cobra.Command {
	var p ekdsend.SendSMSParams
	var scheduledAt string
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a text message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if scheduledAt != "" {
				t, err := time.Parse(time.RFC3339, scheduledAt)
				if err != nil {
					return err
				}
				p.ScheduledAt = &t
			}
			msg, err := a.client.SMS.Send(cmd.Context(), &p)
			if err != nil {
				return err
			}
			return a.render(msg, func(t *uitable.Table) { smsRows(t, *msg) })
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.To, "to", "", "recipient in E.164 format")
	f.StringVar(&p.Message, "message", "", "message text (max 1600 characters)")
	f.StringVar(&p.From, "from", "", "sender number")
	f.StringVar(&p.WebhookURL, "webhook-url", "", "delivery callback URL")
	f.StringVar(&scheduledAt, "scheduled-at", "", "RFC 3339 send time")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func smsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one text message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.client.SMS.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(msg, func(t *uitable.Table) { smsRows(t, *msg) })
		},
	}
}

func smsListCmd(a *app) *cobra.Command {
	var p ekdsend.ListParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List text messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.SMS.List(cmd.Context(), &p)
			if err != nil {
				return err
			}
			return a.render(list, func(t *uitable.Table) {
				smsRows(t, list.Data...)
				pageRow(t, list.Pagination)
			})
		},
	}
	listFlags(cmd, &p)
	return cmd
}

func smsCancelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a scheduled text message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.client.SMS.Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(msg, func(t *uitable.Table) { smsRows(t, *msg) })
		},
	}
}
