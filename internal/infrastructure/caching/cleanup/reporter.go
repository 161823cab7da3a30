package cleanup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/AtRiskMedia/tractstack-inspector/internal/infrastructure/caching/types"
)

var (
	stageColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	infoColor    = color.New(color.FgHiBlack)
	labelColor   = color.New(color.FgHiWhite)
)

// Reporter prints cleanup progress for operators watching the console
type Reporter struct {
	out io.Writer
}

// NewReporter writes to out, or to stdout when out is nil
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out}
}

func (r *Reporter) LogStage(message string, args ...any) {
	stageColor.Fprintf(r.out, "✦ %s\n", fmt.Sprintf(message, args...))
}

func (r *Reporter) LogSuccess(message string, args ...any) {
	successColor.Fprintf(r.out, "✦ %s\n", fmt.Sprintf(message, args...))
}

func (r *Reporter) LogInfo(message string, args ...any) {
	infoColor.Fprintf(r.out, "  %s\n", fmt.Sprintf(message, args...))
}

// Report prints a one-block summary of the caches
func (r *Reporter) Report(stats types.CacheStats, sessions int) {
	var b strings.Builder
	row := func(label string, value any) {
		b.WriteString(labelColor.Sprintf("  %-16s", label))
		b.WriteString(fmt.Sprintf("%v\n", value))
	}
	row("components", stats.Components)
	row("page indexes", stats.PageIndexes)
	row("editor sessions", sessions)
	row("hits/misses", fmt.Sprintf("%d/%d", stats.Hits, stats.Misses))
	fmt.Fprint(r.out, b.String())
}
