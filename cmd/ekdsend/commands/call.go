package commands

import (
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	ekdsend "github.com/ekddigital/ekdsend-go"
)

func callCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Place and inspect voice calls",
	}
	cmd.AddCommand(callCreateCmd(a), callGetCmd(a), callListCmd(a), callHangupCmd(a), callRecordingCmd(a))
	return cmd
}

func callCreateCmd(a *app) *cobra.Command {
	var p ekdsend.CreateCallParams
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Place a call that speaks a message or plays audio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			call, err := a.client.Calls.Create(cmd.Context(), &p)
			if err != nil {
				return err
			}
			return a.render(call, func(t *uitable.Table) { callRows(t, *call) })
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.To, "to", "", "number to call in E.164 format")
	f.StringVar(&p.From, "from", "", "verified caller id")
	f.StringVar(&p.TTSMessage, "tts-message", "", "text to speak")
	f.StringVar(&p.AudioURL, "audio-url", "", "audio file to play")
	f.StringVar(&p.Voice, "voice", ekdsend.DefaultVoice, "voice: alloy, echo, fable, onyx, nova or shimmer")
	f.StringVar(&p.Language, "language", ekdsend.DefaultLanguage, "TTS language code")
	f.BoolVar(&p.Record, "record", false, "record the call")
	f.BoolVar(&p.MachineDetection, "machine-detection", false, "detect answering machines")
	f.StringVar(&p.WebhookURL, "webhook-url", "", "status callback URL")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("from")
	cmd.MarkFlagsOneRequired("tts-message", "audio-url")
	return cmd
}

func callGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			call, err := a.client.Calls.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(call, func(t *uitable.Table) { callRows(t, *call) })
		},
	}
}

func callListCmd(a *app) *cobra.Command {
	var p ekdsend.ListParams
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.Calls.List(cmd.Context(), &p)
			if err != nil {
				return err
			}
			return a.render(list, func(t *uitable.Table) {
				callRows(t, list.Data...)
				pageRow(t, list.Pagination)
			})
		},
	}
	listFlags(cmd, &p)
	return cmd
}

func callHangupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hangup <id>",
		Short: "End an active call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			call, err := a.client.Calls.Hangup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(call, func(t *uitable.Table) { callRows(t, *call) })
		},
	}
}

func callRecordingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recording <id>",
		Short: "Show the recording of a call",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.client.Calls.GetRecording(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(rec, func(t *uitable.Table) {
				t.AddRow("URL:", rec.URL)
				t.AddRow("DURATION:", rec.Duration)
				t.AddRow("CREATED:", fmtTime(rec.CreatedAt))
			})
		},
	}
}
