package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/bradlthomas/ksoap2utility/internal/config"
)

type rootOptions struct {
	cfgFile      string
	namespace    string
	address      string
	loggingLevel string
	jsonLog      bool
	timeout      time.Duration
}

// NewRootCmd builds the ksoap2call command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "ksoap2call",
		Short: "Call ASP.NET SOAP web services from the command line",
		Long: `ksoap2call sends a SOAP 1.1 request to an ASP.NET (ASMX) web service
and prints the answer.

Commands:
  exec    - call a method and report success only
  answer  - call a method and print its scalar answer
  array   - call a method and print its answer parsed as a JSON array

Settings are read from --config (or $KSOAP2_CONFIG) and may be overridden by flags.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default: $"+config.EnvConfigFile+")")
	flags.StringVar(&opts.namespace, "namespace", "", "XML namespace of the services")
	flags.StringVar(&opts.address, "address", "", "base address the service name is appended to")
	flags.StringVarP(&opts.loggingLevel, "logging-level", "l", "", "silent, minimal, medium or verbose")
	flags.BoolVar(&opts.jsonLog, "json-log", false, "write log lines as JSON")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout (0 keeps the configured value)")

	rootCmd.AddCommand(
		newCallCmd(opts, callExec),
		newCallCmd(opts, callAnswer),
		newCallCmd(opts, callArray),
	)

	return rootCmd
}

// Execute runs the command line tool.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// loadConfig reads the config file and applies the flags the user set explicitly.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("namespace") {
		cfg.Namespace = o.namespace
	}
	if flags.Changed("address") {
		cfg.Address = o.address
	}
	if flags.Changed("logging-level") {
		cfg.LoggingLevel = o.loggingLevel
	}
	if flags.Changed("json-log") {
		cfg.LogJSON = o.jsonLog
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
