package cmd

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/corey/xci/internal/app"
	"github.com/corey/xci/internal/domain/chunk"
	"github.com/corey/xci/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// formatDefinitions lists definitions one per line:
//
//	pkg/calc.go:9  add  function_def
func formatDefinitions(defs []chunk.Definition) string {
	var sb strings.Builder
	for _, d := range defs {
		fmt.Fprintf(&sb, "%s%s:%d%s  %s  %s%s%s\n",
			colorCyan, d.FilePath, d.LineNumber, colorReset,
			d.Name,
			colorGray, d.Kind, colorReset)
	}
	return sb.String()
}

// formatSymbol renders a symbol as 1-based line:column [kind] name.
func formatSymbol(s ports.NamedSymbol) string {
	return fmt.Sprintf("%d:%d\t[%s]\t%s", s.Range.Start.Line+1, s.Range.Start.Column+1, s.Kind, s.Name)
}

// formatRange renders a range as 1-based start and end positions followed
// by the text it covers.
func formatRange(r chunk.TextRange, src []byte) string {
	text := ""
	if r.Start.Byte >= 0 && r.End.Byte <= len(src) && r.Start.Byte <= r.End.Byte {
		if b := src[r.Start.Byte:r.End.Byte]; utf8.Valid(b) {
			text = string(b)
		}
	}
	return fmt.Sprintf("%d:%d-%d:%d\t%s",
		r.Start.Line+1, r.Start.Column+1, r.End.Line+1, r.End.Column+1, text)
}

// formatIndexResult summarizes an index run:
//
//	⚡ indexed 12 files (3 unchanged, 1 skipped) │ 240 symbols │ 35ms
func formatIndexResult(r *app.IndexResult, elapsed time.Duration) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s⚡ indexed %d files%s (%d unchanged, %d skipped",
		colorBold, r.Indexed, colorReset, r.Unchanged, r.Skipped)
	if r.Failed > 0 {
		fmt.Fprintf(&sb, ", %s%d failed%s", colorYellow, r.Failed, colorReset)
	}
	fmt.Fprintf(&sb, ") │ %d symbols │ %s", r.Symbols, elapsed.Round(time.Millisecond))
	return sb.String()
}

// formatArtifactLine renders one stored file for `xci show`.
func formatArtifactLine(a *ports.FileArtifact) string {
	return fmt.Sprintf("  %s%s%s  %s%s%s  %d bytes  %d symbols",
		colorCyan, a.Path, colorReset,
		colorGray, a.Language, colorReset,
		a.Size, len(a.Symbols))
}
