// Command annotate runs the annotation pipeline over a file or stdin and
// prints the plain-text report, or the result as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/giygas/medtext-analyzer/annotator"
	"github.com/giygas/medtext-analyzer/config"
	"github.com/giygas/medtext-analyzer/interfaces"
	"github.com/giygas/medtext-analyzer/logging"
	"github.com/giygas/medtext-analyzer/referenceparser"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
	"github.com/giygas/medtext-analyzer/upload"
	"github.com/giygas/medtext-analyzer/validation"
	"github.com/spf13/cobra"
)

// stdinName gives stdin a supported extension so it is read as plain text
const stdinName = "stdin.txt"

type options struct {
	json         bool
	referenceDir string
	maxSize      int64
	verbose      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "annotate [file]",
		Short: "Detect drugs, interactions and side effects in a medical text",
		Long: "annotate reads a plain-text document, or stdin when no file or \"-\" is given,\n" +
			"and reports the drugs, drug interactions and side effects it mentions.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Console logging shares stdout with the report, so keep it to errors
			return logging.InitLogger(logging.Options{Env: config.EnvTest, Verbose: opts.verbose})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return run(cmd, path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&opts.referenceDir, "reference-dir", "", "directory holding drugs.tsv, interactions.tsv and side_effects.tsv")
	cmd.Flags().Int64Var(&opts.maxSize, "max-size", upload.DefaultMaxFileSize, "maximum input size in bytes")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log reference loading details")

	return cmd
}

func run(cmd *cobra.Command, path string, opts *options) error {
	validator := validation.NewDataValidator(int(opts.maxSize))

	text, err := readInput(cmd, path, opts.maxSize)
	if err != nil {
		return err
	}
	if err := validator.ValidateText(text); err != nil {
		return err
	}

	tables, err := loadTables(opts.referenceDir, validator)
	if err != nil {
		return err
	}

	result := annotator.Analyze(text, tables)

	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), annotator.Export(result))
	return err
}

func readInput(cmd *cobra.Command, path string, limit int64) (string, error) {
	if path == "-" {
		return upload.ReadText(stdinName, cmd.InOrStdin(), limit)
	}
	return upload.ReadFile(path, limit)
}

func loadTables(dir string, validator interfaces.DataValidator) (entities.Tables, error) {
	tables, err := referenceparser.NewReferenceParser(dir).ParseTables()
	if err != nil {
		return tables, fmt.Errorf("failed to load reference tables: %w", err)
	}
	if err := validator.ValidateTables(tables); err != nil {
		return tables, fmt.Errorf("invalid reference tables: %w", err)
	}
	return tables, nil
}
