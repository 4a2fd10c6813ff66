// Package testutil holds shared test helpers, chiefly for capturing and
// asserting on structured log output.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucas-albers-lz4/ric/pkg/log"
)

// CaptureLogOutput redirects the global logger into a buffer at the given
// level while testFunc runs, restoring the previous output and level
// afterwards. Panics inside testFunc are recovered and reported as the
// returned error so the restore still happens.
func CaptureLogOutput(logLevel log.Level, testFunc func()) (string, error) {
	originalLevel := log.CurrentLevel()

	var logBuf bytes.Buffer
	restoreOutput := log.SetOutput(&logBuf)
	defer restoreOutput()

	// Set the level after swapping the output so the capture sees it.
	log.SetLevel(logLevel)
	defer log.SetLevel(originalLevel)

	panicErr := runRecovered(testFunc)
	return logBuf.String(), panicErr
}

// CaptureJSONLogs captures log output at the given level and parses each
// line as a JSON object. It returns the raw output, the parsed entries, and
// the first parse error encountered, if any. LOG_FORMAT is forced to json
// for the duration of the capture so the handler choice cannot leak in from
// the environment.
func CaptureJSONLogs(logLevel log.Level, testFunc func()) (logOutput string, parsedLogs []map[string]interface{}, err error) {
	originalFormat, hadFormat := os.LookupEnv("LOG_FORMAT")
	if setErr := os.Setenv("LOG_FORMAT", "json"); setErr != nil {
		return "", nil, fmt.Errorf("failed to set LOG_FORMAT=json: %w", setErr)
	}
	defer func() {
		if hadFormat {
			_ = os.Setenv("LOG_FORMAT", originalFormat)
		} else {
			_ = os.Unsetenv("LOG_FORMAT")
		}
	}()

	logOutput, err = CaptureLogOutput(logLevel, testFunc)
	if err != nil {
		return logOutput, nil, err
	}

	trimmed := strings.TrimSpace(logOutput)
	if trimmed == "" {
		return logOutput, nil, nil
	}

	for i, line := range strings.Split(trimmed, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]interface{}
		if unmarshalErr := json.Unmarshal([]byte(line), &entry); unmarshalErr != nil {
			return logOutput, parsedLogs, fmt.Errorf("failed to unmarshal log line %d as JSON: %w", i+1, unmarshalErr)
		}
		parsedLogs = append(parsedLogs, entry)
	}
	return logOutput, parsedLogs, nil
}

// AssertLogContainsJSON asserts that at least one captured entry contains
// every key-value pair of expectedLog.
func AssertLogContainsJSON(t *testing.T, logs []map[string]interface{}, expectedLog map[string]interface{}) {
	t.Helper()
	for _, entry := range logs {
		if containsAll(entry, expectedLog) {
			return
		}
	}
	expectedJSON, _ := json.MarshalIndent(expectedLog, "", "  ")
	actualJSON, _ := json.MarshalIndent(logs, "", "  ")
	assert.Fail(t, "Expected log entry not found",
		"Expected log containing:\n%s\n\nActual captured logs:\n%s", expectedJSON, actualJSON)
}

// AssertLogDoesNotContainJSON asserts that no captured entry contains every
// key-value pair of unexpectedLog.
func AssertLogDoesNotContainJSON(t *testing.T, logs []map[string]interface{}, unexpectedLog map[string]interface{}) {
	t.Helper()
	for _, entry := range logs {
		if containsAll(entry, unexpectedLog) {
			entryJSON, _ := json.MarshalIndent(entry, "", "  ")
			unexpectedJSON, _ := json.MarshalIndent(unexpectedLog, "", "  ")
			assert.Fail(t, "Unexpected log entry found",
				"Found log entry:\n%s\n\nUnexpected log containing:\n%s", entryJSON, unexpectedJSON)
			return
		}
	}
}

func runRecovered(testFunc func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during log capture: %v", r)
		}
	}()
	testFunc()
	return nil
}

// containsAll reports whether actual holds every key-value pair of expected.
// JSON numbers arrive as float64, so numeric expectations are compared
// through that type.
func containsAll(actual, expected map[string]interface{}) bool {
	for key, expectedValue := range expected {
		actualValue, ok := actual[key]
		if !ok {
			return false
		}
		if actualFloat, isFloat := actualValue.(float64); isFloat {
			switch ev := expectedValue.(type) {
			case float64:
				if actualFloat != ev {
					return false
				}
			case int:
				if actualFloat != float64(ev) {
					return false
				}
			case int64:
				if actualFloat != float64(ev) {
					return false
				}
			default:
				return false
			}
			continue
		}
		if actualValue != expectedValue {
			return false
		}
	}
	return true
}
