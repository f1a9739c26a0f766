package main

import (
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Gobd/librarian/internal/config"
	"github.com/Gobd/librarian/internal/logger"
)

// app is the state shared by the subcommands once the config is loaded.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		cfg:    config.Default(),
		log:    zerolog.Nop(),
		stdout: stdout,
		stderr: stderr,
	}

	root := &cobra.Command{
		Use:           "librarian",
		Short:         "Validate library API payloads and print the API document",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level, _ = cmd.Flags().GetString("log-level")
			}
			a.cfg = cfg
			a.log = logger.New(a.stderr, cfg.Log.Level)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().String("log-level", "", "log level (overrides LIBRARIAN_LOG_LEVEL)")

	root.AddCommand(
		newKindsCmd(a),
		newValidateCmd(a),
		newOpenAPICmd(a),
	)
	return root
}

// printJSON writes v to stdout, indented when output.pretty is set.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	if a.cfg.Output.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
