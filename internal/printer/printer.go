// Package printer renders terminal output for the opsboard CLI: colored
// status lines and rich formatted failures built from the repositories'
// typed errors.
package printer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/gmnfield/opsboard/internal/repo"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		green.Printf("✓ %s", msg)
	} else {
		green.Print(msg)
	}
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Warning prints a warning message in yellow with a warning emoji prefix
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		yellow.Printf("⚠️  %s", msg)
	} else {
		yellow.Print(msg)
	}
}

// Error creates a formatted error message with title, explanation, and suggestions
// Prints the formatted error to stderr with colors and returns a simple error for Cobra
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(os.Stderr, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(os.Stderr, "%s\n", explanation)
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(os.Stderr, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(os.Stderr, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(os.Stderr, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	// Return simple error for Cobra (won't be printed due to SilenceErrors)
	return fmt.Errorf("%s", title)
}

// Failure renders a repository error as a formatted terminal failure,
// choosing the title and suggestions from the error's type, and returns a
// simple error for Cobra.
func Failure(err error) error {
	var (
		vErr  *repo.ValidationError
		pErr  *repo.PreconditionError
		dErr  *repo.DuplicateOpenRequestError
		dtErr *repo.DuplicateTechnicianError
		rErr  *repo.ReferencedEntityError
		rqErr *repo.ReasonRequiredError
		tErr  *repo.TerminalStateError
		nfErr *repo.NotFoundError
	)

	switch {
	case errors.As(err, &vErr):
		return Error("Invalid input", err.Error(), nil)

	case errors.As(err, &pErr):
		return Error("Precondition failed", err.Error(), nil)

	case errors.As(err, &dErr):
		return Error("Duplicate open request", err.Error(),
			[]string{"Approve, pay or delete the existing request first"})

	case errors.As(err, &dtErr):
		return Error("Duplicate technician", err.Error(),
			[]string{fmt.Sprintf("Edit the existing record instead: opsboard tech edit %s", dtErr.ExistingID)})

	case errors.As(err, &rErr):
		return Error("Technician still referenced",
			err.Error(),
			[]string{
				"Blacklist the technician instead to keep history consistent",
				"Remove the referencing records first, then delete",
			})

	case errors.As(err, &rqErr):
		return Error("Reason required", err.Error(),
			[]string{"Pass a reason: opsboard tech blacklist <id> --reason \"...\""})

	case errors.As(err, &tErr):
		return Error("Terminal state", err.Error(), nil)

	case errors.As(err, &nfErr):
		return Error("Not found", err.Error(), nil)

	default:
		return Error("Operation failed", err.Error(), nil)
	}
}

// Step prints a step message with emphasis (used in multi-step operations)
func Step(format string, a ...any) {
	cyan.Printf("→ %s", fmt.Sprintf(format, a...))
}

// Println prints a plain message (for output that doesn't need coloring)
func Println(a ...any) {
	fmt.Println(a...)
}

// Printf prints a plain formatted message (for output that doesn't need coloring)
func Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}
