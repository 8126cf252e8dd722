// batch.go — file discovery, fault isolation and the parse cache.
//
// OVERVIEW
// --------
// The extraction core (scanner/parser/table builder) is a pure function of
// source text; this file is the collaborator that feeds it. A Generator
// owns the batch policy:
//
//  1. Discovery — walk the configured root, collect *.lua deterministically.
//  2. Containment — a file resolving outside the root (symlink escape) is
//     rejected with its own diagnostic and skipped.
//  3. Isolation — each file is processed under a recover guard; a panic in
//     one file becomes a warning diagnostic and the batch continues. A
//     fault outside the per-file boundary becomes an error diagnostic; the
//     batch still completes and reports.
//  4. Caching — parse results are memoized in an LRU keyed by the SHA-256
//     of the source text plus the file stem, so repeated runs over a mostly
//     unchanged tree only re-extract what changed.
//
// Diagnostics are accumulated, never thrown: Run always returns the full
// ordered list and callers map severities to exit codes.
package binder

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	scriptExt        = ".lua"
	defaultCacheSize = 256
)

// Options configures a Generator.
type Options struct {
	// Root is the directory scanned for script files.
	Root string
	// Namespace encloses the generated C# classes.
	Namespace string
	// CacheSize bounds the parse-result LRU; 0 means defaultCacheSize.
	CacheSize int
}

// Generator runs the extract-and-emit batch over one script root.
type Generator struct {
	opts  Options
	emit  *Emitter
	cache *lru.Cache[string, ParseResult]
}

func NewGenerator(opts Options) (*Generator, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, ParseResult](size)
	if err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	return &Generator{
		opts:  opts,
		emit:  NewEmitter(opts.Namespace),
		cache: cache,
	}, nil
}

// DiscoverScripts walks root and returns every *.lua file, in the
// deterministic order of filepath.WalkDir.
func DiscoverScripts(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), scriptExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover scripts under %s: %w", root, err)
	}
	return files, nil
}

// Run discovers, parses and emits the whole batch. When w is nil the emit
// stage is skipped (check mode). The returned diagnostics cover every file;
// no condition aborts the batch.
func (g *Generator) Run(w io.Writer) []Diagnostic {
	var diags []Diagnostic

	files, err := DiscoverScripts(g.opts.Root)
	if err != nil {
		return append(diags, Diagnostic{
			Code: CodeInternal, Severity: SevError,
			Message: err.Error(),
		})
	}
	if len(files) == 0 {
		return append(diags, Diagnostic{
			Code: CodeNoInputs, Severity: SevInfo,
			Message: fmt.Sprintf("no %s files found under %s", scriptExt, g.opts.Root),
		})
	}

	var results []ParseResult
	for _, path := range files {
		res, ds := g.processFile(path)
		diags = append(diags, ds...)
		if res == nil {
			continue
		}
		if !res.Exposable() {
			diags = append(diags, Diagnostic{
				Code: CodeNothingToBind, Severity: SevInfo, File: path,
				Message: "no exposable declarations",
			})
			continue
		}
		results = append(results, *res)
	}

	if w != nil && len(results) > 0 {
		if d := g.emitAll(w, results); d != nil {
			diags = append(diags, *d)
		}
	}
	return diags
}

// processFile parses one script under a recover guard. It returns a nil
// result when the file was skipped; diagnostics explain why.
func (g *Generator) processFile(path string) (res *ParseResult, diags []Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			diags = append(diags, Diagnostic{
				Code: CodeFileFailed, Severity: SevWarning, File: path,
				Message: fmt.Sprintf("processing failed: %v", r),
			})
		}
	}()

	if !g.insideRoot(path) {
		return nil, []Diagnostic{{
			Code: CodeOutsideRoot, Severity: SevError, File: path,
			Message: fmt.Sprintf("resolves outside root %s", g.opts.Root),
		}}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, []Diagnostic{{
			Code: CodeFileFailed, Severity: SevWarning, File: path,
			Message: fmt.Sprintf("read failed: %v", err),
		}}
	}

	r := g.parseCached(string(src), stemOf(path))
	for _, d := range r.Errors {
		d.File = path
		diags = append(diags, d)
	}
	return &r, diags
}

// ParseFile parses a single script through the cache. Used by the inspect
// REPL, which re-reads files as the user pokes at them.
func (g *Generator) ParseFile(path string) (ParseResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return ParseResult{}, err
	}
	return g.parseCached(string(src), stemOf(path)), nil
}

func (g *Generator) parseCached(src, stem string) ParseResult {
	sum := sha256.Sum256([]byte(src))
	key := stem + ":" + hex.EncodeToString(sum[:])
	if r, ok := g.cache.Get(key); ok {
		return r
	}
	r := Parse(src, stem)
	g.cache.Add(key, r)
	return r
}

func (g *Generator) emitAll(w io.Writer, results []ParseResult) (diag *Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diag = &Diagnostic{
				Code: CodeInternal, Severity: SevError,
				Message: fmt.Sprintf("emit failed: %v", r),
			}
		}
	}()
	if _, err := io.WriteString(w, g.emit.Emit(results)); err != nil {
		return &Diagnostic{
			Code: CodeInternal, Severity: SevError,
			Message: fmt.Sprintf("write output: %v", err),
		}
	}
	return nil
}

// insideRoot resolves symlinks on both sides and checks containment.
func (g *Generator) insideRoot(path string) bool {
	root, err := filepath.EvalSymlinks(g.opts.Root)
	if err != nil {
		return false
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
