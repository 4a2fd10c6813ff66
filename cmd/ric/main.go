package main

import (
	"os"

	"github.com/lucas-albers-lz4/ric/pkg/exitcodes"
	log "github.com/lucas-albers-lz4/ric/pkg/log"
)

// main runs the root command and maps any ExitCodeError back to its process
// exit code. Errors without a code fall into the general runtime bucket.
func main() {
	if err := Execute(); err != nil {
		if code, ok := exitcodes.IsExitCodeError(err); ok {
			log.Error("command failed", "error", err, "exitCode", code)
			os.Exit(code)
		}
		log.Error("command failed", "error", err)
		os.Exit(exitcodes.ExitGeneralRuntimeError)
	}
}
