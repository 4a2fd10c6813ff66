package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/lucas-albers-lz4/ric/pkg/exitcodes"
	"github.com/lucas-albers-lz4/ric/pkg/image"
	log "github.com/lucas-albers-lz4/ric/pkg/log"
)

// batchInput is the YAML input file shape: a single images list.
type batchInput struct {
	Images []string `json:"images"`
}

// batchEntry pairs one input reference with its classification. The embedded
// ParsedImage flattens into the entry in both report formats.
type batchEntry struct {
	Image             string `json:"image"`
	image.ParsedImage `json:",inline"`
}

// batchReport is the rendered result, one entry per input in input order.
type batchReport struct {
	Images []batchEntry `json:"images"`
}

// newBatchCmd creates the batch command, classifying many references in one
// invocation.
func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify a list of image references",
		Long: `Batch reads image references from a YAML file with an images list, or
newline-delimited from stdin when --input-file is "-", classifies each, and
renders a report. Unrecognized references never fail the run; classification
is total and every input produces an entry.`,
		Args: cobra.NoArgs,
		RunE: runBatch,
	}

	cmd.Flags().StringP("input-file", "i", "", `YAML file with an "images:" list, or "-" for newline-delimited stdin`)
	addOutputFlags(cmd.Flags(), formatYAML, "output format (yaml or json)")
	cmd.Flags().Bool("keep-tag", false, "classify references as given, without stripping :tag or @digest")

	return cmd
}

func runBatch(cmd *cobra.Command, _ []string) error {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get input-file flag: %w", err)}
	}
	if inputFile == "" {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitMissingRequiredFlag,
			Err:  errors.New("the --input-file flag is required"),
		}
	}
	format, err := cmd.Flags().GetString("output-format")
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get output-format flag: %w", err)}
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get output-file flag: %w", err)}
	}
	keepTag, err := cmd.Flags().GetBool("keep-tag")
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get keep-tag flag: %w", err)}
	}

	refs, err := readBatchInput(cmd, inputFile)
	if err != nil {
		return err
	}
	log.Debug("classifying batch", "count", len(refs), "inputFile", inputFile)

	report := batchReport{Images: make([]batchEntry, 0, len(refs))}
	for _, ref := range refs {
		report.Images = append(report.Images, batchEntry{
			Image:       ref,
			ParsedImage: image.Classify(prepareReference(ref, keepTag)),
		})
	}

	data, err := renderBatchReport(&report, format)
	if err != nil {
		return err
	}
	return writeOutput(cmd, data, outputFile)
}

// readBatchInput collects references from the YAML input file, or one per
// line from stdin when the file is "-". Blank lines and #-comments in stdin
// input are skipped.
func readBatchInput(cmd *cobra.Command, inputFile string) ([]string, error) {
	if inputFile == "-" {
		var refs []string
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			refs = append(refs, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: fmt.Errorf("failed to read stdin: %w", err)}
		}
		return refs, nil
	}

	data, err := afero.ReadFile(AppFs, inputFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &exitcodes.ExitCodeError{
				Code: exitcodes.ExitChartNotFound,
				Err:  fmt.Errorf("input file %s not found", inputFile),
			}
		}
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: fmt.Errorf("failed to read input file %s: %w", inputFile, err)}
	}

	var input batchInput
	if err := sigsyaml.Unmarshal(data, &input); err != nil {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("failed to parse input file %s: %w", inputFile, err),
		}
	}
	if len(input.Images) == 0 {
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInputConfigurationError,
			Err:  fmt.Errorf("input file %s contains no images", inputFile),
		}
	}
	return input.Images, nil
}

func renderBatchReport(report *batchReport, format string) ([]byte, error) {
	switch format {
	case formatYAML:
		return sigsyaml.Marshal(report)
	case formatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInvalidOutputFormat,
			Err:  fmt.Errorf("unknown output format %q (expected %s or %s)", format, formatYAML, formatJSON),
		}
	}
}
