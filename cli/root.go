package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"quest-demos/config"
	"quest-demos/encryption"
)

type globalOptions struct {
	output string
	p, q   int64
	e      int64
}

// NewRootCommand builds the quest command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "quest",
		Short: "Toy RSA and information theory demos",
		Long: `quest runs the concept demos from the command line or serves them over HTTP.

The RSA demo uses a deliberately tiny key (p=61, q=53, e=17 by default) and
encrypts one character at a time. It is for teaching, not for secrets.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format (table, json)")
	root.PersistentFlags().Int64Var(&opts.p, "p", 0, "first RSA prime (overrides RSA_P)")
	root.PersistentFlags().Int64Var(&opts.q, "q", 0, "second RSA prime (overrides RSA_Q)")
	root.PersistentFlags().Int64Var(&opts.e, "e", 0, "RSA public exponent (overrides RSA_E)")

	root.AddCommand(
		newKeyCommand(opts),
		newEncryptCommand(opts),
		newDecryptCommand(opts),
		newEntropyCommand(opts),
		newGiniCommand(opts),
		newBayesCommand(opts),
		newServeCommand(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// loadConfig reads the environment and applies any key flags that were set.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("p") {
		cfg.RSA.P = opts.p
	}
	if flags.Changed("q") {
		cfg.RSA.Q = opts.q
	}
	if flags.Changed("e") {
		cfg.RSA.E = opts.e
	}
	return cfg, nil
}

func loadKey(cmd *cobra.Command, opts *globalOptions) (*encryption.KeyParameters, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	return cfg.KeyParameters()
}

// render prints rows as a table, or v as JSON when --output json.
func render(w io.Writer, opts *globalOptions, v interface{}, header []string, rows [][]string) error {
	switch opts.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "table", "":
		table := tablewriter.NewWriter(w)
		table.Header(cells(header)...)
		for _, row := range rows {
			if err := table.Append(cells(row)...); err != nil {
				return err
			}
		}
		return table.Render()
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}
}

func cells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}
