package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rpggio/sena/internal/domain/domainerr"
	"github.com/rpggio/sena/internal/domain/project"
	"github.com/rpggio/sena/internal/validate"
	"gopkg.in/yaml.v3"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected operation (validation, permission, not found, conflict)
	ExitCommandError = 2 // Command error (bad flags, unreadable config, store failure)
)

// Error codes reported in CLI responses.
const (
	ErrCodeValidation = "E_VALIDATION"
	ErrCodeNotFound   = "E_NOT_FOUND"
	ErrCodePermission = "E_PERMISSION"
	ErrCodeConflict   = "E_CONFLICT"
	ErrCodeTransition = "E_TRANSITION"
	ErrCodeStore      = "E_STORE"
	ErrCodeCommand    = "E_COMMAND"
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success outputs a successful result in the configured format. Text output
// is YAML using the same field names as the JSON output.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		encoder := json.NewEncoder(f.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: data})
	}
	return writeYAML(f.Writer, data)
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		encoder := json.NewEncoder(f.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if details != nil {
		return writeYAML(f.Writer, details)
	}
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Fail reports err and returns the ExitError the command should return.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := classify(err)

	var details any
	if verrs, ok := validate.AsErrors(err); ok {
		details = verrs
	}
	message := err.Error()
	if code == ErrCodeValidation {
		message = "validation failed"
	}

	if outErr := f.Error(code, message, details); outErr != nil {
		return WrapExitError(ExitCommandError, "write output", outErr)
	}
	return WrapExitError(exit, code, err)
}

// classify maps an error to a response code and exit code.
func classify(err error) (string, int) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return ErrCodeCommand, exitErr.Code
	}
	if _, ok := validate.AsErrors(err); ok {
		return ErrCodeValidation, ExitFailure
	}
	switch {
	case errors.Is(err, domainerr.ErrNotFound):
		return ErrCodeNotFound, ExitFailure
	case errors.Is(err, domainerr.ErrPermissionDenied):
		return ErrCodePermission, ExitFailure
	case errors.Is(err, domainerr.ErrConflict):
		return ErrCodeConflict, ExitFailure
	case errors.Is(err, project.ErrInvalidTransition):
		return ErrCodeTransition, ExitFailure
	case domainerr.IsInfrastructure(err):
		return ErrCodeStore, ExitCommandError
	}
	// Any other persistence failure is a constraint violation.
	var perr *domainerr.PersistenceError
	if errors.As(err, &perr) {
		return ErrCodeConflict, ExitFailure
	}
	return ErrCodeCommand, ExitCommandError
}

// writeYAML renders data as block YAML. It goes through JSON so field names
// and order follow the json tags.
func writeYAML(w io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return err
	}
	blockStyle(&node)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// blockStyle clears the flow and quoting styles that decoding JSON leaves on
// every node.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
