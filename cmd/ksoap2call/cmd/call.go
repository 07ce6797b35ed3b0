package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bradlthomas/ksoap2utility"
	"github.com/bradlthomas/ksoap2utility/internal/logging"
)

type callKind int

const (
	callExec callKind = iota
	callAnswer
	callArray
)

var callUsage = map[callKind]struct {
	use   string
	short string
}{
	callExec:   {"exec", "Call a method and report whether it succeeded"},
	callAnswer: {"answer", "Call a method and print its scalar answer"},
	callArray:  {"array", "Call a method and print its answer as a JSON array"},
}

func newCallCmd(root *rootOptions, kind callKind) *cobra.Command {
	var params []string

	usage := callUsage[kind]
	c := &cobra.Command{
		Use:     usage.use + " <service> <method>",
		Short:   usage.short,
		Example: "  ksoap2call " + usage.use + " Authenticate.asmx Login -p user=bob -p password=secret",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, root, kind, args[0], args[1], params)
		},
	}
	c.Flags().StringArrayVarP(&params, "param", "p", nil, "parameter as key=value (repeatable)")

	return c
}

func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

func runCall(cmd *cobra.Command, root *rootOptions, kind callKind, service, method string, pairs []string) error {
	params, err := parseParams(pairs)
	if err != nil {
		return err
	}

	cfg, err := root.loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	level, err := ksoap2utility.ParseLoggingLevel(cfg.LoggingLevel)
	if err != nil {
		return err
	}

	logger := logging.Setup(cfg.LoggingLevel, cfg.LogJSON)
	client := ksoap2utility.New(cfg.Namespace, cfg.Address,
		ksoap2utility.WithLoggingLevel(level),
		ksoap2utility.WithLogger(logger),
		ksoap2utility.WithHTTPClient(cfg.HTTPClient()),
	)

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch kind {
	case callExec:
		fmt.Fprintln(out, client.InvokeVoid(ctx, service, method, params))
	case callAnswer:
		fmt.Fprintln(out, client.InvokeForString(ctx, service, method, params))
	case callArray:
		if arr := client.InvokeForJSONArray(ctx, service, method, params); arr != nil {
			fmt.Fprintln(out, arr.String())
		}
	}

	errs := client.ListErrors()
	for i, rec := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "error %d: %s\n", i+1, rec.Message)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %d error(s) recorded", service, method, len(errs))
	}

	return nil
}
