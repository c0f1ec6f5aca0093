package treesitter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// StateDirName is the per-project and per-user state directory.
const StateDirName = ".xci"

// grammarsDirName holds runtime grammar libraries inside StateDirName.
const grammarsDirName = "grammars"

// DynamicLoader resolves grammars that are not compiled in. A grammar named
// lang lives in {dir}/{lang}.so (.dylib on macOS) and exports
// tree_sitter_{lang}. The first search path holding the library wins.
type DynamicLoader struct {
	searchPaths []string

	mu      sync.Mutex
	loaded  map[string]*tree_sitter.Language
	handles []uintptr // kept open for the process lifetime
}

func NewDynamicLoader(searchPaths []string) *DynamicLoader {
	return &DynamicLoader{
		searchPaths: searchPaths,
		loaded:      make(map[string]*tree_sitter.Language),
	}
}

// GlobalGrammarDir returns ~/.xci/grammars, or "" when there is no home.
func GlobalGrammarDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, StateDirName, grammarsDirName)
}

// DefaultGrammarPaths lists the project grammar directory before the global one.
func DefaultGrammarPaths(projectRoot string) []string {
	var paths []string
	if projectRoot != "" {
		paths = append(paths, filepath.Join(projectRoot, StateDirName, grammarsDirName))
	}
	if global := GlobalGrammarDir(); global != "" {
		paths = append(paths, global)
	}
	return paths
}

// LibExtension returns the shared library extension for the current platform.
func LibExtension() string {
	if runtime.GOOS == "darwin" {
		return ".dylib"
	}
	return ".so"
}

// CSymbolName returns the constructor a grammar library exports.
// Dashes in the language name become underscores.
func CSymbolName(lang string) string {
	return "tree_sitter_" + strings.ReplaceAll(lang, "-", "_")
}

// libraryNames maps languages whose grammar ships inside another
// language's library. tree-sitter-typescript builds tsx and typescript
// into one library exporting both constructors.
var libraryNames = map[string]string{
	"tsx": "typescript",
}

// LibraryName returns the library base name that holds lang's grammar.
func LibraryName(lang string) string {
	if base, ok := libraryNames[lang]; ok {
		return base
	}
	return lang
}

// LoadGrammar opens the library for lang and returns its language.
// Loaded languages are cached; a missing library wraps ErrGrammarNotFound.
func (dl *DynamicLoader) LoadGrammar(lang string) (*tree_sitter.Language, error) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	if l, ok := dl.loaded[lang]; ok {
		return l, nil
	}
	path := dl.GrammarPath(lang)
	if path == "" {
		return nil, fmt.Errorf("%w: %s (searched %s)", ErrGrammarNotFound, lang, strings.Join(dl.searchPaths, ", "))
	}

	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("open grammar %s: %w", path, err)
	}
	dl.handles = append(dl.handles, handle)

	l, err := constructLanguage(handle, CSymbolName(lang))
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", lang, err)
	}
	dl.loaded[lang] = l
	return l, nil
}

// constructLanguage calls the exported constructor symbol in handle.
func constructLanguage(handle uintptr, symbol string) (*tree_sitter.Language, error) {
	addr, err := purego.Dlsym(handle, symbol)
	if err != nil {
		return nil, err
	}
	var construct func() uintptr
	purego.RegisterFunc(&construct, addr)

	ptr := construct()
	if ptr == 0 {
		return nil, fmt.Errorf("%s returned null", symbol)
	}
	// The TSLanguage is static data inside the library.
	return tree_sitter.NewLanguage(*(*unsafe.Pointer)(unsafe.Pointer(&ptr))), nil
}

// GrammarPath returns the library that would be loaded for lang, or "".
// The constructor looked up inside it is still CSymbolName(lang).
func (dl *DynamicLoader) GrammarPath(lang string) string {
	for _, dir := range dl.searchPaths {
		candidate := filepath.Join(dir, LibraryName(lang)+LibExtension())
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// InstalledGrammars returns the sorted language names with a library on the
// search paths.
func (dl *DynamicLoader) InstalledGrammars() []string {
	ext := LibExtension()
	seen := make(map[string]bool)
	for _, dir := range dl.searchPaths {
		matches, _ := filepath.Glob(filepath.Join(dir, "*"+ext))
		for _, m := range matches {
			seen[strings.TrimSuffix(filepath.Base(m), ext)] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (dl *DynamicLoader) SearchPaths() []string {
	return dl.searchPaths
}
