package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/mori/internal/logger"
)

// exit is swapped out in tests so fatal paths can be observed in-process.
var exit = os.Exit

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		exit(1)
	}
}

// FatalWithHint is Fatal plus a second stderr line telling the user what to try next.
func FatalWithHint(err error, hint string) {
	if err != nil {
		logger.Error("Command execution failed", "error", err, "hint", hint)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint != "" {
			fmt.Fprintf(os.Stderr, "       %s\n", hint)
		}
		exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	exit(1)
}
