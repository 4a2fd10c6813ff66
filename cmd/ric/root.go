// Package main implements the command-line interface for ric (Registry
// Identification and Classification). The CLI is a thin adapter around the
// pkg/image classification engine:
//
//   - classify: classify a single image reference and render the result
//   - batch: classify a list of references from a file or stdin
//   - inspect: find and classify every image reference in a Helm chart
//
// Each command has various flags for configuration. See the help output for
// details.
package main

import (
	"bytes"
	"os"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	log "github.com/lucas-albers-lz4/ric/pkg/log"
	"github.com/lucas-albers-lz4/ric/pkg/version"
)

// Global flag variables
var (
	cfgFile      string
	debugEnabled bool
	logLevel     string
)

// AppFs defines the filesystem interface to use, allows mocking in tests.
var AppFs = afero.NewOsFs()

// SetFs replaces the current filesystem with the provided one and returns a
// function to restore it. This is primarily used for testing.
func SetFs(newFs afero.Fs) func() {
	oldFs := AppFs
	AppFs = newFs
	return func() { AppFs = oldFs }
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ric",
	Short: "Classify container image references by hosting registry",
	Long: `ric (Registry Identification and Classification) parses container image
references and determines where they are hosted: cloud provider, account or
project, region, canonical registry host, repository path, and registry type.

Classification is pure string matching; ric never contacts a registry and
never validates that an image exists.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// Resolve the log level before any command logic runs. The --debug
		// flag and RIC_DEBUG environment variable both force debug level;
		// otherwise --log-level decides.
		level := log.LevelInfo
		switch {
		case debugEnabled || ricDebugEnv():
			level = log.LevelDebug
		case logLevel != "":
			parsedLevel, err := log.ParseLevel(logLevel)
			if err != nil {
				log.Warnf("Invalid log level %q, using default %s: %v", logLevel, level, err)
			} else {
				level = parsedLevel
			}
		}
		log.SetLevel(level)
		log.Debug("ric starting", "version", version.BinaryVersion, "logLevel", level.String())
		return nil
	},
}

// ricDebugEnv reports whether the RIC_DEBUG environment variable requests
// debug logging. Unparsable values count as false.
func ricDebugEnv() bool {
	raw := os.Getenv("RIC_DEBUG")
	if raw == "" {
		return false
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warnf("Invalid boolean value for RIC_DEBUG: %q. Defaulting to false.", raw)
		return false
	}
	return enabled
}

// Execute adds all child commands to the root command and runs it. Called by
// main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ric.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugEnabled, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "set log level (debug, info, warn, error)")

	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newInspectCmd())
}

// initConfig reads in the config file and matching environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.SetConfigName(".ric")
			viper.SetConfigType("yaml")
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
		}
	}

	viper.SetEnvPrefix("RIC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.Debug("Using config file", "path", viper.ConfigFileUsed())
	}
}

// executeCommand is a helper for testing Cobra commands.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// getRootCmd returns the root command, useful for testing.
func getRootCmd() *cobra.Command {
	return rootCmd
}
