package commands

import (
	"runtime"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	ekdsend "github.com/ekddigital/ekdsend-go"
)

type versionInfo struct {
	Version   string `json:"version"`
	UserAgent string `json:"userAgent"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"client": "none"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   ekdsend.Version,
				UserAgent: ekdsend.UserAgent,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			return a.render(info, func(t *uitable.Table) {
				t.RightAlign(0)
				t.Separator = " "
				t.AddRow("version:", info.Version)
				t.AddRow("userAgent:", info.UserAgent)
				t.AddRow("goVersion:", info.GoVersion)
				t.AddRow("platform:", info.Platform)
			})
		},
	}
}
