// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayOutcome], [DisplayQuietResult], [DisplayBatchSummary].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatOutline], [FormatTick].

package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/format"
	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/orchestration"
	"github.com/agbru/txt2pptx/internal/transport"
	"github.com/agbru/txt2pptx/internal/ui"
)

// FormatOutline renders the numbered slide list with layout labels.
func FormatOutline(o generation.Outcome, labels *generation.Dictionary) string {
	var b strings.Builder
	width := len(fmt.Sprint(len(o.Slides)))
	for i, s := range o.Slides {
		fmt.Fprintf(&b, "  %*d. %s %s[%s]%s\n",
			width, i+1, s.Title, ui.ColorGrey(), labels.Layout(s.Layout), ui.ColorReset())
	}
	return b.String()
}

// DisplayOutcome prints the deck title, subtitle, slide count, outline and
// download link of a successful generation.
func DisplayOutcome(out io.Writer, o generation.Outcome, labels *generation.Dictionary, downloadURL string) {
	fmt.Fprintf(out, "%s✓ %s%s%s\n", ui.ColorGreen(), ui.ColorBold(), labels.Summary(o), ui.ColorReset())
	if o.Subtitle != "" {
		fmt.Fprintf(out, "  %s%s%s\n", ui.ColorGrey(), o.Subtitle, ui.ColorReset())
	}
	fmt.Fprint(out, FormatOutline(o, labels))
	if downloadURL != "" {
		fmt.Fprintf(out, "%s: %s%s%s\n", labels.Message(generation.MsgDownload), ui.ColorMagenta(), downloadURL, ui.ColorReset())
	}
}

// DisplayQuietResult prints only the artifact reference, for scripting.
func DisplayQuietResult(out io.Writer, o generation.Outcome, location string) {
	if location != "" {
		fmt.Fprintln(out, location)
		return
	}
	fmt.Fprintln(out, o.Filename)
}

// DisplayStored reports where a downloaded deck was written.
func DisplayStored(out io.Writer, location string, size int64) {
	fmt.Fprintf(out, "Saved %s%s%s (%s)\n", ui.ColorMagenta(), location, ui.ColorReset(), format.FormatBytes(size))
}

// DisplayHealth prints the service health line.
func DisplayHealth(out io.Writer, baseURL string, status transport.HealthStatus) {
	color := ui.ColorGreen()
	if !status.OK() {
		color = ui.ColorRed()
	}
	fmt.Fprintf(out, "%s %s%s%s", baseURL, color, status.Status, ui.ColorReset())
	if status.Version != "" {
		fmt.Fprintf(out, " (version %s)", status.Version)
	}
	fmt.Fprintln(out)
}

// DisplayBatchSummary prints one row per job: name, duration and status.
// Padding is computed on the plain text so ANSI codes do not skew columns.
func DisplayBatchSummary(out io.Writer, results []orchestration.JobResult, labels *generation.Dictionary) {
	fmt.Fprintf(out, "\n--- Batch Summary ---\n")

	maxNameLen := utf8.RuneCountInString("Job")
	maxDurationLen := utf8.RuneCountInString("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, utf8.RuneCountInString(res.Job.Name))
		maxDurationLen = max(maxDurationLen, utf8.RuneCountInString(format.FormatExecutionDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sJob%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-3),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s✗ %s%s", ui.ColorRed(), apperrors.UserMessage(res.Err, labels.ErrorMessages()), ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✓ %s%s", ui.ColorGreen(), labels.Summary(res.Outcome), ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Job.Name, ui.ColorReset(), padRight("", maxNameLen-utf8.RuneCountInString(res.Job.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-utf8.RuneCountInString(duration)),
			status)
	}
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}
