package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/corey/xci/internal/domain/chunk"
	"github.com/corey/xci/internal/domain/render"
	"github.com/corey/xci/internal/ports"
)

// Assembler turns retrieved chunks into a context block: one section per
// file, each the file's skeleton with every entity the chunks touch
// expanded.
type Assembler struct {
	root   string
	engine ports.Intelligence
	opts   render.Options
	logger *slog.Logger
}

// NewAssembler creates an assembler reading files under root.
func NewAssembler(root string, engine ports.Intelligence, opts render.Options, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = discardLogger()
	}
	return &Assembler{root: root, engine: engine, opts: opts, logger: logger}
}

// Assemble renders chunks grouped by path in path order. Each section is
// "{path}\n" followed by the completed body. A file that cannot be
// completed falls back to the chunk snippets as given. Chunks with an
// invalid line range are dropped.
func (as *Assembler) Assemble(chunks []chunk.CodeChunk) string {
	byPath := make(map[string][]chunk.View)
	for i := range chunks {
		c := &chunks[i]
		if err := c.Validate(); err != nil {
			as.logger.Warn("dropping chunk", "err", err)
			continue
		}
		byPath[c.Path] = append(byPath[c.Path], c.View())
	}

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	buf := render.NewBuffer(as.opts)
	for _, path := range paths {
		views := byPath[path]
		buf.Section(path + "\n")
		mark := buf.Mark()
		if err := as.complete(path, views, buf); err != nil {
			as.logger.Debug("completing chunks failed, using snippets", "path", path, "err", err)
			buf.Truncate(mark)
			writeSnippets(buf, views)
		}
	}
	return buf.String()
}

func (as *Assembler) complete(path string, views []chunk.View, buf *render.Buffer) error {
	lang, ok := as.engine.LanguageFor(path)
	if !ok {
		return fmt.Errorf("no language for %s", path)
	}
	src, err := os.ReadFile(as.resolve(path))
	if err != nil {
		return err
	}
	return as.engine.CompleteChunks(lang, src, views, buf)
}

// resolve maps a chunk path to a file. Relative paths are under the root.
func (as *Assembler) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(as.root, filepath.FromSlash(path))
}

// writeSnippets writes the chunk texts in line order, each ending with a
// newline.
func writeSnippets(buf *render.Buffer, views []chunk.View) {
	sorted := append([]chunk.View(nil), views...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartLine < sorted[j].StartLine })
	for _, v := range sorted {
		if v.IsEmpty() {
			continue
		}
		buf.WriteString(v.Text)
		if !strings.HasSuffix(v.Text, "\n") {
			buf.WriteString("\n")
		}
	}
}
