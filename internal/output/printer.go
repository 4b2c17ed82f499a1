package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes command results either as JSON or as styled text.
type Printer struct {
	w     io.Writer
	errW  io.Writer
	json  bool
	color bool
	theme theme
}

// theme holds the styles of human output.
type theme struct {
	errorLabel lipgloss.Style
	warnLabel  lipgloss.Style
	success    lipgloss.Style
	heading    lipgloss.Style
	rule       lipgloss.Style
	key        lipgloss.Style
	header     lipgloss.Style
	bullet     lipgloss.Style
	dim        lipgloss.Style
	border     lipgloss.TerminalColor
}

func newTheme(color bool) theme {
	if !color {
		plain := lipgloss.NewStyle()
		return theme{
			errorLabel: plain, warnLabel: plain, success: plain,
			heading: plain, rule: plain, key: plain,
			header: plain, bullet: plain, dim: plain,
			border: lipgloss.NoColor{},
		}
	}
	return theme{
		errorLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warnLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		success:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		heading:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		rule:       lipgloss.NewStyle().Faint(true),
		key:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		header:     lipgloss.NewStyle().Bold(true),
		bullet:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		border:     lipgloss.Color("8"),
	}
}

// NewPrinter creates a Printer writing to writer. color enables lipgloss
// styling of human output; it has no effect in JSON mode.
func NewPrinter(writer io.Writer, jsonMode bool, color bool) *Printer {
	return &Printer{
		w:     writer,
		errW:  writer,
		json:  jsonMode,
		color: color,
		theme: newTheme(color),
	}
}

// WithStderr routes human-mode errors and warnings to w. JSON-mode errors
// stay on the main writer so agents read a single stream.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON reports whether the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// IsTTY reports whether human output is styled.
func (p *Printer) IsTTY() bool {
	return p.color
}

// Success reports a completed operation. JSON mode writes data as one
// object; human mode prints data["message"] when present and every key in
// sorted order otherwise.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}

	if msg, ok := data["message"].(string); ok {
		p.line(p.w, p.theme.success.Render(msg))
		return nil
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		p.line(p.w, fmt.Sprintf("%s: %v", p.theme.header.Render(key), data[key]))
	}
	return nil
}

// Error reports err. Errors that are not *ExitError are treated as user
// errors.
func (p *Printer) Error(err error) {
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}

	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		p.line(p.w, "")
		return
	}
	p.line(p.errW, p.theme.errorLabel.Render("Error")+": "+exitErr.Message)
}

// Warn reports a problem that did not stop the command, such as a snapshot
// that could not be pruned.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	p.line(p.errW, p.theme.warnLabel.Render("Warning")+": "+msg)
}

// Print writes formatted text without a trailing newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes args followed by a newline.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// WriteJSON writes data as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns {"error": message, "code": code}.
func ErrorJSON(message string, code int) []byte {
	result, _ := json.Marshal(map[string]any{
		"error": message,
		"code":  code,
	})
	return result
}

func (p *Printer) line(w io.Writer, s string) {
	mustWrite(fmt.Fprintln(w, s))
}

// mustWrite panics on a failed write to stdout, stderr, or a buffer.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}
