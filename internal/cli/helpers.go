package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Global flags (set from the cmd package)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// SetOutput redirects the Print helpers, normally to the running command's
// writers. Nil restores the process streams.
func SetOutput(out, errOut io.Writer) {
	stdout, stderr = os.Stdout, os.Stderr
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// Confirm prompts the user for confirmation on stdin
func Confirm(prompt string, defaultYes bool) (bool, error) {
	return ConfirmFrom(os.Stdin, stdout, prompt, defaultYes)
}

// ConfirmFrom prompts on out and reads the answer from in. Input ending
// without a newline still counts as an answer.
func ConfirmFrom(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	fmt.Fprint(out, prompt+suffix)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(response)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	if !quiet {
		printTagged(stdout, "✓", "OK", format, args...)
	}
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	if !quiet {
		printTagged(stdout, "ℹ", "INFO", format, args...)
	}
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	printTagged(stderr, "⚠", "WARNING", format, args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	printTagged(stderr, "✗", "ERROR", format, args...)
}

// printTagged prefixes the message with symbol, or with label when
// --no-color is set
func printTagged(w io.Writer, symbol, label, format string, args ...interface{}) {
	prefix := symbol + " "
	if noColor {
		prefix = label + ": "
	}
	fmt.Fprintf(w, "%s%s\n", prefix, fmt.Sprintf(format, args...))
}
