// Package main provides the CLI entry point for jsonschemalint, a tool
// that validates JSON or YAML instance documents against a draft-03 or
// draft-04 JSON Schema.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/altshiftab/jsonschema-legacy/internal/logging"
	"github.com/altshiftab/jsonschema-legacy/pkg/errortree"
	"github.com/altshiftab/jsonschema-legacy/pkg/jsonschema"
	"github.com/altshiftab/jsonschema-legacy/pkg/validerr"
	"github.com/altshiftab/jsonschema-legacy/pkg/value"
)

// ErrReadInput indicates a schema or instance document could not be
// read or decoded.
var ErrReadInput = errors.New("read input")

// outputFormats are the legal values of --format.
var outputFormats = []string{"text", "basic"}

func main() {
	logCfg := logging.NewConfig()

	var quiet bool
	var format string

	rootCmd := &cobra.Command{
		Use:   "jsonschemalint [flags] <schema.json> <instance.json> [instance2.yaml ...]",
		Short: "Validate JSON or YAML documents against a JSON Schema",
		Long: `jsonschemalint validates one or more instance documents against a single
JSON Schema (draft-03 or draft-04, selected by the schema's "$schema"
member). Instance and schema files may be JSON or YAML; pass "-" to read
an instance from stdin.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger := slog.New(handler)

			if !slices.Contains(outputFormats, format) {
				return fmt.Errorf("--format: unknown value %q, one of: %s", format, outputFormats)
			}

			return run(logger, cmd.OutOrStdout(), args[0], args[1:], quiet, format)
		},
	}

	logCfg.RegisterFlags(rootCmd.Flags())
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress per-violation output; exit status only")
	rootCmd.Flags().StringVar(&format, "format", "text", fmt.Sprintf("output format, one of: %s", outputFormats))

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}
	if err := rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(outputFormats, cobra.ShellCompDirectiveNoFileComp)); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, out io.Writer, schemaPath string, instancePaths []string, quiet bool, format string) error {
	schemaData, err := readFile(schemaPath)
	if err != nil {
		return fmt.Errorf("%w: schema: %w", ErrReadInput, err)
	}

	schema, err := decodeDocument(schemaPath, schemaData)
	if err != nil {
		return fmt.Errorf("%w: schema: %w", ErrReadInput, err)
	}

	validator, err := jsonschema.NewValidator(schema)
	if err != nil {
		return fmt.Errorf("schema is invalid: %w", err)
	}
	logger.Debug("loaded schema", slog.String("path", schemaPath))

	var failed bool

	for _, path := range instancePaths {
		data, err := readFile(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
		}

		instance, err := decodeDocument(path, data)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
		}

		tree := validator.Validate(instance)
		if tree.Contains() {
			failed = true
			if !quiet {
				printResult(out, path, tree, format)
			}
			logger.Info("instance invalid", slog.String("path", path), slog.Int("errors", tree.TotalErrors()))
			continue
		}

		logger.Info("instance valid", slog.String("path", path))
		if !quiet {
			printResult(out, path, tree, format)
		}
	}

	if failed {
		return fmt.Errorf("one or more instances failed validation")
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// decodeDocument parses data as JSON or, failing that, as YAML
// (converted to JSON so [value.Decode] can apply its usual int/number
// discrimination).
func decodeDocument(path string, data []byte) (value.Value, error) {
	if v, err := value.Decode(data); err == nil {
		return v, nil
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return value.Value{}, fmt.Errorf("%s: not valid JSON or YAML: %w", path, err)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return value.Value{}, fmt.Errorf("%s: %w", path, err)
	}
	return value.Decode(jsonData)
}

// printResult writes path's validation result to out in the requested
// format ("text" or "basic").
func printResult(out io.Writer, path string, tree *errortree.Tree, format string) {
	if format == "basic" {
		printBasic(out, path, tree)
		return
	}
	printText(out, path, tree)
}

func printText(out io.Writer, path string, tree *errortree.Tree) {
	if !tree.Contains() {
		fmt.Fprintf(out, "%s: valid\n", path)
		return
	}
	fmt.Fprintf(out, "%s: invalid (%d error(s))\n", path, tree.TotalErrors())
	for _, v := range flatten(tree) {
		fmt.Fprintf(out, "  %s: %s\n", v.Path.String(), v.Message)
	}
}

// basicOutput is a minimal rendering of the JSON Schema "basic" output
// format: a top-level validity flag plus a flat list of errors, each
// naming the instance and schema locations at which it occurred.
type basicOutput struct {
	Valid  bool         `json:"valid"`
	Errors []basicError `json:"errors,omitempty"`
}

type basicError struct {
	InstanceLocation string `json:"instanceLocation"`
	KeywordLocation  string `json:"keywordLocation"`
	Error            string `json:"error"`
}

func printBasic(out io.Writer, path string, tree *errortree.Tree) {
	violations := flatten(tree)
	result := basicOutput{Valid: len(violations) == 0}
	for _, v := range violations {
		result.Errors = append(result.Errors, basicError{
			InstanceLocation: "#" + v.Path.String(),
			KeywordLocation:  "#" + v.SchemaPath.String(),
			Error:            v.Message,
		})
	}

	data, err := json.Marshal(result)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", path, err)
		return
	}
	fmt.Fprintf(out, "%s: %s\n", path, data)
}

func flatten(tree *errortree.Tree) []*validerr.ViolationError {
	if tree == nil {
		return nil
	}
	out := append([]*validerr.ViolationError(nil), tree.Errors...)
	for _, key := range tree.Children() {
		out = append(out, flatten(tree.Child(key))...)
	}
	return out
}
