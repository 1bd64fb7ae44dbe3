package errors

import (
	"fmt"
	"io"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

// color wraps text in ANSI color codes if colors are enabled.
func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string   { return color(colorRed, text) }
func cyan(text string) string  { return color(colorCyan, text) }
func gray(text string) string  { return color(colorGray, text) }
func bold(text string) string  { return color(colorBold, text) }

// Format returns the error formatted for terminal display: a header with the
// code and category, the source excerpt when the error has a location, then
// the cause, detail and hint.
func (e *StoreError) Format() string {
	var b strings.Builder
	b.WriteString("\n")
	e.writeHeader(&b)
	e.writeSource(&b)
	b.WriteString("\n")
	e.writeNotes(&b)
	b.WriteString("\n")
	return b.String()
}

func (e *StoreError) writeHeader(b *strings.Builder) {
	label := "error"
	if e.Code != "" {
		label += "[" + e.Code + "]"
	}
	fmt.Fprintf(b, "%s %s", red(bold(label)), bold(e.Message))
	if e.Category != "" {
		fmt.Fprintf(b, " %s", gray("("+string(e.Category)+")"))
	}
	b.WriteString("\n")
}

// writeSource prints the location and the context lines around it. Context
// starts contextRadius lines above the error, clipped to the first line.
func (e *StoreError) writeSource(b *strings.Builder) {
	if e.Location == nil {
		return
	}
	fmt.Fprintf(b, "  %s %s\n", gray("-->"), cyan(e.Location.String()))

	first := max(e.Location.Line-contextRadius, 1)
	for i, line := range e.Context {
		n := first + i
		marker := "  "
		if n == e.Location.Line {
			marker = red("> ")
		}
		fmt.Fprintf(b, "  %s%4d %s %s\n", marker, n, gray("|"), line)
		if n == e.Location.Line && e.Location.Column > 0 {
			fmt.Fprintf(b, "%9s%s %s%s\n", "", gray("|"), strings.Repeat(" ", e.Location.Column-1), red("^"))
		}
	}
}

func (e *StoreError) writeNotes(b *strings.Builder) {
	if e.Wrapped != nil {
		fmt.Fprintf(b, "  %s %s\n", gray("cause:"), e.Wrapped.Error())
	}
	for _, line := range wrapText(e.Detail, 70) {
		fmt.Fprintf(b, "  %s\n", line)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(b, "  %s %s\n", cyan("hint:"), e.Suggestion)
	}
}

// FormatCompact returns a compact single-line error format.
func (e *StoreError) FormatCompact() string {
	var b strings.Builder

	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}

	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}

	b.WriteString(e.Message)

	return b.String()
}

// FormatJSON returns the error as a JSON object.
func (e *StoreError) FormatJSON() string {
	var b strings.Builder
	b.WriteString("{")

	if e.Code != "" {
		b.WriteString(fmt.Sprintf(`"code":%q,`, e.Code))
	}
	b.WriteString(fmt.Sprintf(`"category":%q,`, e.Category))
	b.WriteString(fmt.Sprintf(`"message":%q`, e.Message))

	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(`,"detail":%q`, e.Detail))
	}
	if e.Location != nil {
		b.WriteString(fmt.Sprintf(`,"location":{"file":%q,"line":%d,"column":%d}`,
			e.Location.File, e.Location.Line, e.Location.Column))
	}
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf(`,"suggestion":%q`, e.Suggestion))
	}
	if e.Wrapped != nil {
		b.WriteString(fmt.Sprintf(`,"cause":%q`, e.Wrapped.Error()))
	}

	b.WriteString("}")
	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	var current strings.Builder

	for _, word := range words {
		if current.Len()+len(word)+1 > width {
			if current.Len() > 0 {
				lines = append(lines, current.String())
				current.Reset()
			}
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// PrintError prints a formatted error to w.
func PrintError(w io.Writer, err error) {
	if se, ok := Classify(err).(*StoreError); ok {
		fmt.Fprint(w, se.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", red(bold("error:")), err.Error())
}

