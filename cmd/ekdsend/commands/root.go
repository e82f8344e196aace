package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	ekdsend "github.com/ekddigital/ekdsend-go"
)

// cliConfig is assembled by viper from flags, EKDSEND_* environment variables and an
// optional config file, in that order of precedence.
type cliConfig struct {
	APIKey     string        `mapstructure:"api-key"`
	BaseURL    string        `mapstructure:"base-url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max-retries"`
	Debug      bool          `mapstructure:"debug"`
	Output     string        `mapstructure:"output"`
}

type app struct {
	cfg    cliConfig
	client *ekdsend.Client
	out    io.Writer
}

func Execute() error {
	root := newRootCmd(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	var configFile string

	root := &cobra.Command{
		Use:           "ekdsend",
		Short:         "Send email, SMS and voice calls through the EKDSend API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Root().PersistentFlags(), configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if cmd.Annotations["client"] == "none" {
				return nil
			}
			a.client, err = a.newClient()
			return err
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	flags.String("api-key", "", "API key (ek_live_... or ek_test_...), or set EKDSEND_API_KEY")
	flags.String("base-url", ekdsend.DefaultBaseURL, "API base URL")
	flags.Duration("timeout", ekdsend.DefaultTimeout, "timeout for each attempt")
	flags.Int("max-retries", ekdsend.DefaultMaxRetries, "retries after the first attempt")
	flags.Bool("debug", false, "log requests and responses to stderr")
	flags.StringP("output", "o", "table", "output format: table or json")

	root.AddCommand(emailCmd(a), smsCmd(a), callCmd(a), versionCmd(a))
	return root
}

func loadConfig(flags *pflag.FlagSet, configFile string) (cliConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("EKDSEND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return cliConfig{}, err
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return cliConfig{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cliConfig{}, err
	}
	switch cfg.Output {
	case "table", "json":
	default:
		return cliConfig{}, fmt.Errorf("unknown output format %q", cfg.Output)
	}
	return cfg, nil
}

func (a *app) newClient() (*ekdsend.Client, error) {
	return ekdsend.NewClient(a.cfg.APIKey,
		ekdsend.WithBaseURL(a.cfg.BaseURL),
		ekdsend.WithTimeout(a.cfg.Timeout),
		ekdsend.WithMaxRetries(a.cfg.MaxRetries),
		ekdsend.WithDebug(a.cfg.Debug),
	)
}
