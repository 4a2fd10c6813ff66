package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"helm.sh/helm/v3/pkg/cli/values"

	"github.com/lucas-albers-lz4/ric/internal/helm"
	"github.com/lucas-albers-lz4/ric/pkg/analysis"
	"github.com/lucas-albers-lz4/ric/pkg/exitcodes"
	"github.com/lucas-albers-lz4/ric/pkg/image"
	log "github.com/lucas-albers-lz4/ric/pkg/log"
)

// chartInfo summarizes the inspected chart.
type chartInfo struct {
	Name         string `json:"name" yaml:"name"`
	Version      string `json:"version" yaml:"version"`
	Path         string `json:"path" yaml:"path"`
	Dependencies int    `json:"dependencies" yaml:"dependencies"`
}

// classifiedImage is one image reference found in the chart values together
// with its classification.
type classifiedImage struct {
	Path      string            `json:"path" yaml:"path"`
	Reference string            `json:"reference" yaml:"reference"`
	Parsed    image.ParsedImage `json:"parsed" yaml:"parsed"`
}

// inspectReport is the rendered inspect result.
type inspectReport struct {
	Chart  chartInfo         `json:"chart" yaml:"chart"`
	Images []classifiedImage `json:"images" yaml:"images"`
}

// newInspectCmd creates the inspect command: find every image reference in a
// Helm chart's coalesced values and classify each one.
func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Classify every image reference in a Helm chart",
		Long: `Inspect loads a Helm chart, merges any user-supplied values, walks the
coalesced values tree for image references (string and registry/repository/tag
map forms), and classifies each one by hosting registry.`,
		Args: cobra.NoArgs,
		RunE: runInspect,
	}

	cmd.Flags().String("chart-path", "", "path to the chart directory or .tgz archive")
	cmd.Flags().StringSliceP("values", "f", nil, "specify values in a YAML file (can specify multiple)")
	cmd.Flags().StringArray("set", nil, "set values on the command line (can specify multiple)")
	cmd.Flags().StringArray("set-string", nil, "set STRING values on the command line (can specify multiple)")
	addOutputFlags(cmd.Flags(), formatYAML, "output format (yaml or json)")

	return cmd
}

func runInspect(cmd *cobra.Command, _ []string) error {
	chartPath, err := cmd.Flags().GetString("chart-path")
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get chart-path flag: %w", err)}
	}
	if chartPath == "" {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitMissingRequiredFlag,
			Err:  errors.New("the --chart-path flag is required"),
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
	valueOpts, err := valueOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	exists, err := afero.Exists(AppFs, chartPath)
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: fmt.Errorf("failed to check chart path %s: %w", chartPath, err)}
	}
	if !exists {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitChartNotFound,
			Err:  fmt.Errorf("chart path %s not found", chartPath),
		}
	}

	loadedChart, mergedValues, err := helm.LoadChartWithValues(chartPath, valueOpts)
	if err != nil {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitChartProcessingFailed,
			Err:  fmt.Errorf("failed to process chart %s: %w", chartPath, err),
		}
	}

	patterns := analysis.FindImagePatterns(mergedValues)
	log.Debug("found image patterns", "chart", loadedChart.Name(), "count", len(patterns))

	report := inspectReport{
		Chart: chartInfo{
			Name:         loadedChart.Name(),
			Version:      loadedChart.Metadata.Version,
			Path:         chartPath,
			Dependencies: len(loadedChart.Dependencies()),
		},
		Images: make([]classifiedImage, 0, len(patterns)),
	}
	for _, pattern := range patterns {
		report.Images = append(report.Images, classifiedImage{
			Path:      pattern.Path,
			Reference: pattern.Value,
			Parsed:    image.Classify(prepareReference(pattern.Value, false)),
		})
	}

	data, err := renderInspectReport(&report, format)
	if err != nil {
		return err
	}
	return writeOutput(cmd, data, outputFile)
}

func valueOptionsFromFlags(cmd *cobra.Command) (*values.Options, error) {
	valueFiles, err := cmd.Flags().GetStringSlice("values")
	if err != nil {
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get values flag: %w", err)}
	}
	setValues, err := cmd.Flags().GetStringArray("set")
	if err != nil {
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get set flag: %w", err)}
	}
	setStringValues, err := cmd.Flags().GetStringArray("set-string")
	if err != nil {
		return nil, &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get set-string flag: %w", err)}
	}
	return &values.Options{
		ValueFiles:   valueFiles,
		Values:       setValues,
		StringValues: setStringValues,
	}, nil
}

func renderInspectReport(report *inspectReport, format string) ([]byte, error) {
	switch format {
	case formatYAML:
		return yaml.Marshal(report)
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
