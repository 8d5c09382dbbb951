package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

const (
	BoxWidth = 46

	// fieldWidth aligns the labels printed by Field.
	fieldWidth = 10
)

var (
	Bold   = color.New(color.Bold).SprintFunc()
	Dim    = color.New(color.Faint).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()

	// Out keeps stdout free for machine-readable output.
	Out io.Writer = os.Stderr
)

// Header prints the top border with "devservices" branding.
func Header() {
	border := strings.Repeat("─", BoxWidth-15)
	fmt.Fprintf(Out, "  %s %s %s\n", Dim("┌"), Bold("devservices"), Dim(border))
}

// Footer prints the bottom border.
func Footer() {
	border := strings.Repeat("─", BoxWidth-1)
	fmt.Fprintf(Out, "  %s%s\n", Dim("└"), Dim(border))
}

// Info prints an informational message with a cyan arrow.
func Info(format string, args ...interface{}) {
	fmt.Fprintf(Out, "  %s %s\n", Cyan("→"), fmt.Sprintf(format, args...))
}

// Success prints a success message with a green checkmark.
func Success(format string, args ...interface{}) {
	fmt.Fprintf(Out, "  %s %s\n", Green("✔"), fmt.Sprintf(format, args...))
}

// Fail prints an error message with a red X.
func Fail(format string, args ...interface{}) {
	fmt.Fprintf(Out, "  %s %s\n", Red("✘"), fmt.Sprintf(format, args...))
}

// Warn prints a warning message with a yellow circle.
func Warn(format string, args ...interface{}) {
	fmt.Fprintf(Out, "  %s %s\n", Yellow("○"), fmt.Sprintf(format, args...))
}

// DimMsg prints a dimmed message.
func DimMsg(format string, args ...interface{}) {
	fmt.Fprintf(Out, "  %s\n", Dim(fmt.Sprintf(format, args...)))
}

// Field prints an aligned "label  value" line, e.g. a datasource coordinate.
func Field(label, value string) {
	fmt.Fprintf(Out, "    %s %s\n", Dim(fmt.Sprintf("%-*s", fieldWidth, label)), value)
}

// BlankLine prints a blank line.
func BlankLine() {
	fmt.Fprintln(Out, "")
}
