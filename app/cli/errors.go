package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorCategory groups CLI failures for display.
type ErrorCategory int

const (
	// Argument errors come from bad command arguments or flags.
	Argument ErrorCategory = iota
	// Catalog errors mean the catalog could not be loaded or is invalid.
	Catalog
	// Configuration errors come from the config file or environment.
	Configuration
	// Runtime errors happen while executing a command.
	Runtime
)

func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Catalog:
		return "Catalog Error"
	case Configuration:
		return "Configuration Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is an error with a category and remediation hints.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Usage       string
	Remediation []string
	Err         error
}

func (e *CLIError) Error() string { return e.Message }

func (e *CLIError) Unwrap() error { return e.Err }

// NewArgumentError creates an argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage creates an argument error that shows usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// Wrap attaches a category and remediation to err. A nil err stays nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: err.Error(), Remediation: remediation, Err: err}
}

// WrapWithMessage is Wrap with a leading message.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %v", message, err),
		Remediation: remediation,
		Err:         err,
	}
}

var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// FormatError renders err for a terminal. Errors that are not a *CLIError
// are shown as runtime errors.
func FormatError(err error, useColors bool) string {
	if err == nil {
		return ""
	}
	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		cliErr = &CLIError{Category: Runtime, Message: err.Error()}
	}

	paint := func(f func(a ...interface{}) string, s string) string {
		if useColors {
			return f(s)
		}
		return s
	}

	var sb strings.Builder
	sb.WriteString(paint(errorLabel, "Error"))
	sb.WriteString(" [")
	sb.WriteString(paint(categoryFmt, cliErr.Category.String()))
	sb.WriteString("]: ")
	sb.WriteString(paint(errorMsg, cliErr.Message))
	sb.WriteString("\n")

	if cliErr.Usage != "" {
		sb.WriteString("\n")
		sb.WriteString(paint(usageLabel, "Usage: "))
		sb.WriteString(cliErr.Usage)
		sb.WriteString("\n")
	}
	if len(cliErr.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(paint(fixLabel, "To fix this:"))
		sb.WriteString("\n")
		for _, step := range cliErr.Remediation {
			sb.WriteString("  ")
			sb.WriteString(paint(bullet, "•"))
			sb.WriteString(" ")
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// PrintError writes the formatted error to w, colored unless color.NoColor.
func PrintError(w io.Writer, err error) {
	fmt.Fprint(w, FormatError(err, !color.NoColor))
}
