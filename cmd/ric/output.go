package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/lucas-albers-lz4/ric/pkg/exitcodes"
	"github.com/lucas-albers-lz4/ric/pkg/fileutil"
	"github.com/lucas-albers-lz4/ric/pkg/image"
	log "github.com/lucas-albers-lz4/ric/pkg/log"
)

// Output format names accepted by --output-format.
const (
	formatEnv    = "env"
	formatYAML   = "yaml"
	formatJSON   = "json"
	formatGitHub = "github"
)

const (
	// defaultEnvPrefix is the prefix for the exported environment-style
	// variables (IMAGE_PROVIDER, IMAGE_ACCOUNT, ...).
	defaultEnvPrefix = "IMAGE"
	// githubOutputEnv names the GitHub Actions step output file.
	githubOutputEnv = "GITHUB_OUTPUT"
	// githubEnvFileEnv names the GitHub Actions environment file.
	githubEnvFileEnv = "GITHUB_ENV"
)

// addOutputFlags registers the output flags shared by the rendering commands.
func addOutputFlags(flags *pflag.FlagSet, defaultFormat, formatHelp string) {
	flags.String("output-format", defaultFormat, formatHelp)
	flags.String("output-file", "", "write output to file instead of stdout")
}

// orderedFields lists the six output fields in their documented order. Every
// field always appears, empty values included, matching the env contract.
func orderedFields(parsed image.ParsedImage) [][2]string {
	return [][2]string{
		{"provider", parsed.Provider.String()},
		{"account", parsed.Account},
		{"region", parsed.Region},
		{"registry", parsed.Registry},
		{"repository", parsed.Repository},
		{"registry_type", parsed.RegistryType.String()},
	}
}

// renderEnv produces the six eval-able PREFIX_FIELD=value lines.
func renderEnv(parsed image.ParsedImage, envPrefix string) string {
	var b strings.Builder
	for _, field := range orderedFields(parsed) {
		fmt.Fprintf(&b, "%s_%s=%s\n", strings.ToUpper(envPrefix), strings.ToUpper(field[0]), field[1])
	}
	return b.String()
}

// renderParsed serializes a single classification in the requested format.
// The github format is handled separately because it writes to CI files
// rather than producing a document.
func renderParsed(parsed image.ParsedImage, format, envPrefix string) ([]byte, error) {
	switch format {
	case formatEnv:
		return []byte(renderEnv(parsed, envPrefix)), nil
	case formatYAML:
		return yaml.Marshal(parsed)
	case formatJSON:
		data, err := json.MarshalIndent(parsed, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, &exitcodes.ExitCodeError{
			Code: exitcodes.ExitInvalidOutputFormat,
			Err:  fmt.Errorf("unknown output format %q (expected %s, %s, %s, or %s)", format, formatEnv, formatYAML, formatJSON, formatGitHub),
		}
	}
}

// emitGitHubOutputs appends the six fields as step outputs to the file named
// by $GITHUB_OUTPUT and as PREFIX_* variables to the file named by
// $GITHUB_ENV. Both variables must be set, as they are inside a GitHub
// Actions job.
func emitGitHubOutputs(fs afero.Fs, parsed image.ParsedImage, envPrefix string) error {
	outputPath := os.Getenv(githubOutputEnv)
	envPath := os.Getenv(githubEnvFileEnv)
	if outputPath == "" || envPath == "" {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitMissingCIFile,
			Err:  fmt.Errorf("github output format requires both %s and %s to be set", githubOutputEnv, githubEnvFileEnv),
		}
	}

	var outputs strings.Builder
	for _, field := range orderedFields(parsed) {
		fmt.Fprintf(&outputs, "%s=%s\n", field[0], field[1])
	}
	if err := fileutil.AppendFile(fs, outputPath, []byte(outputs.String())); err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: err}
	}

	if err := fileutil.AppendFile(fs, envPath, []byte(renderEnv(parsed, envPrefix))); err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: err}
	}

	log.Debug("wrote github outputs", "outputFile", outputPath, "envFile", envPath)
	return nil
}

// writeOutput sends rendered data to stdout or, when outputFile is set, to
// the filesystem with owner-only permissions.
func writeOutput(cmd *cobra.Command, data []byte, outputFile string) error {
	if outputFile == "" {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := fileutil.WriteFile(AppFs, outputFile, data); err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitIOError, Err: err}
	}
	log.Info("wrote output file", "path", outputFile)
	return nil
}
