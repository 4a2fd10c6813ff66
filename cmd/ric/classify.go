package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucas-albers-lz4/ric/pkg/exitcodes"
	"github.com/lucas-albers-lz4/ric/pkg/image"
	log "github.com/lucas-albers-lz4/ric/pkg/log"
)

// newClassifyCmd creates the classify command, the single-reference wrapper
// around the classification engine.
func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify IMAGE",
		Short: "Classify a container image reference by hosting registry",
		Long: `Classify parses one image reference and reports its hosting registry:
provider, account, region, canonical registry host, repository path, and
registry type.

Any :tag or @digest suffix is stripped before classification unless
--keep-tag is given. The env format prints six eval-able variables; the
github format appends the fields to the files named by GITHUB_OUTPUT and
GITHUB_ENV.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClassify,
	}

	addOutputFlags(cmd.Flags(), formatEnv, "output format (env, yaml, json, or github)")
	cmd.Flags().Bool("keep-tag", false, "classify the reference as given, without stripping :tag or @digest")
	cmd.Flags().String("env-prefix", defaultEnvPrefix, "prefix for env-style variable names")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &exitcodes.ExitCodeError{
			Code: exitcodes.ExitMissingRequiredFlag,
			Err:  errors.New("an image reference argument is required"),
		}
	}
	ref := args[0]

	keepTag, err := cmd.Flags().GetBool("keep-tag")
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get keep-tag flag: %w", err)}
	}
	format, err := cmd.Flags().GetString("output-format")
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get output-format flag: %w", err)}
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get output-file flag: %w", err)}
	}
	envPrefix, err := cmd.Flags().GetString("env-prefix")
	if err != nil {
		return &exitcodes.ExitCodeError{Code: exitcodes.ExitInternalError, Err: fmt.Errorf("failed to get env-prefix flag: %w", err)}
	}

	parsed := image.Classify(prepareReference(ref, keepTag))

	if format == formatGitHub {
		return emitGitHubOutputs(AppFs, parsed, envPrefix)
	}

	data, err := renderParsed(parsed, format, envPrefix)
	if err != nil {
		return err
	}
	return writeOutput(cmd, data, outputFile)
}

// prepareReference strips any tag or digest suffix unless the caller asked
// to keep it. References the splitter cannot handle are classified as given;
// the engine itself is total.
func prepareReference(ref string, keepTag bool) string {
	if keepTag {
		return ref
	}
	name, tag, digest, err := image.SplitTagDigest(ref)
	if err != nil {
		log.Debug("could not split tag/digest, classifying reference as given", "image", ref, "error", err)
		return ref
	}
	if tag != "" || digest != "" {
		log.Debug("stripped tag/digest before classification", "image", ref, "tag", tag, "digest", digest)
	}
	return name
}
