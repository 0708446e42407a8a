package errors

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("journal store unavailable"), expected: "Error: journal store unavailable"},
		{name: "wrapped error", err: errors.New("failed to open database: permission denied"), expected: "Error: failed to open database: permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.err))
		})
	}
}

func TestFormatf(t *testing.T) {
	assert.Equal(t, "Error: invalid birth date \"1990-13-01\"", Formatf("invalid birth date %q", "1990-13-01"))
	assert.Equal(t, "Error: expectancy 0 out of range", Formatf("expectancy %d out of range", 0))
}

func TestFatalExitsWithCodeOne(t *testing.T) {
	var code int
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	Fatal(errors.New("boom"))
	assert.Equal(t, 1, code)
}

func TestFatalNilErrorDoesNotExit(t *testing.T) {
	called := false
	exit = func(int) { called = true }
	defer func() { exit = os.Exit }()

	Fatal(nil)
	FatalWithHint(nil, "ignored")
	assert.False(t, called)
}

// TestFatalWithHint runs in a subprocess so the real stderr output can be checked.
func TestFatalWithHint(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_HINT") == "1" {
		FatalWithHint(errors.New("could not open journal store"), "run 'mori init' first")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalWithHint")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_HINT=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("FatalWithHint() did not exit with error: %v", err)
	}
	assert.Equal(t, 1, exitErr.ExitCode())
	out := stderr.String()
	assert.True(t, strings.Contains(out, "Error: could not open journal store"), out)
	assert.True(t, strings.Contains(out, "run 'mori init' first"), out)
}
