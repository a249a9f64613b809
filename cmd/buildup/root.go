package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/buildup/internal/clients/buildup"
	"github.com/bobmcallan/buildup/internal/common"
	"github.com/bobmcallan/buildup/internal/interfaces"
)

// rootOptions holds the persistent flags and the state resolved from them
// before a subcommand runs.
type rootOptions struct {
	configPath string
	key        string
	secret     string
	baseURL    string
	env        string
	shape      string
	uid        string
	logLevel   string

	config *common.Config
	logger *common.Logger
	client interfaces.PlanningClient
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buildup",
		Short: "Query the BuildUp financial planning API",
		Long: `buildup calls the BuildUp planning API and prints the response envelope.

Commands:
  allocations       Instrument weighting for a risk value
  risk-value        Risk value from the questionnaire answers
  ira-type          Contribution limit of an IRA type
  account-overview  Savings, earnings, tax and retirement projection

Credentials come from --key/--secret, the config file, or
BUILDUP_API_KEY and BUILDUP_API_SECRET.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return opts.resolve(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "buildup.toml", "config file (.toml or .yaml)")
	flags.StringVar(&opts.key, "key", "", "API key")
	flags.StringVar(&opts.secret, "secret", "", "API secret")
	flags.StringVar(&opts.baseURL, "base-url", "", "API origin, overrides --env")
	flags.StringVar(&opts.env, "env", "", "environment: local or production")
	flags.StringVar(&opts.shape, "shape", "", "request shape: legacy, json or uid")
	flags.StringVar(&opts.uid, "uid", "", "user id sent with every request")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAllocationsCmd(opts),
		newRiskValueCmd(opts),
		newIRATypeCmd(opts),
		newAccountOverviewCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// resolve loads configuration, applies flag overrides and builds the client.
// A client injected beforehand is kept.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	config, err := common.LoadConfig(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("key", &config.Credentials.Key, o.key)
	override("secret", &config.Credentials.Secret, o.secret)
	override("base-url", &config.Client.BaseURL, o.baseURL)
	override("env", &config.Environment, o.env)
	override("shape", &config.Client.Shape, o.shape)
	override("uid", &config.Client.UID, o.uid)
	override("log-level", &config.Logging.Level, o.logLevel)

	o.config = config
	o.logger = common.NewLoggerFromConfig(config.Logging)

	if o.client != nil {
		return nil
	}

	if missing := config.ValidateRequired(); len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	baseURL, err := config.ResolveBaseURL()
	if err != nil {
		return err
	}
	shape, err := buildup.ParseShape(config.Client.Shape)
	if err != nil {
		return err
	}
	creds, err := buildup.NewCredentials(config.Credentials.Key, config.Credentials.Secret)
	if err != nil {
		return err
	}

	client, err := buildup.NewClient(creds,
		buildup.WithBaseURL(baseURL),
		buildup.WithShape(shape),
		buildup.WithTimeout(config.Client.GetTimeout()),
		buildup.WithRateLimit(config.Client.RateLimit),
		buildup.WithLogger(o.logger),
	)
	if err != nil {
		return err
	}

	o.logger.Debug().
		Str("base_url", baseURL).
		Str("shape", shape.String()).
		Str("key", creds.Key()).
		Msg("Planning client ready")

	o.client = client
	return nil
}

// printEnvelope writes the response body exactly as received, indented.
func printEnvelope(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = w.Write(raw)
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "buildup version %s\n", common.GetFullVersion())
			return nil
		},
	}
}
