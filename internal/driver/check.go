package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"huffls/internal/ast"
	"huffls/internal/diag"
	"huffls/internal/source"
	"huffls/internal/trace"
)

// HuffExt is the source file extension.
const HuffExt = ".huff"

// CheckOptions configures CheckFiles.
type CheckOptions struct {
	Jobs  int        // 0 — GOMAXPROCS
	Cache *DiskCache // nil — без кеша
	// BaseDir is what relative paths are rendered against; empty means the
	// working directory.
	BaseDir string
}

// CheckResult содержит результат проверки одного файла
type CheckResult struct {
	Path     string
	File     *source.File
	Contract *ast.Contract // nil для файлов с ошибкой и для попаданий в кеш
	Macros   []string
	Err      *diag.StructuredError
	LoadErr  error
	Cached   bool
}

// Failed reports whether the file could not be loaded or parsed.
func (r *CheckResult) Failed() bool {
	return r.LoadErr != nil || r.Err != nil
}

// ExpandPaths turns files and directories into a sorted, de-duplicated list
// of .huff files. Explicit file arguments are kept whatever their extension.
func ExpandPaths(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		files, err := ListHuffFiles(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ListHuffFiles возвращает отсортированный список всех *.huff файлов в директории
func ListHuffFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, HuffExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckFiles parses every file in parallel. Results keep the order of paths.
// Files are parsed independently; #include directives are recorded but not
// followed.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) (*source.FileSet, []CheckResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeServer, "check", 0).WithExtra("files", fmt.Sprint(len(paths)))
	defer span.End("")

	// FileSet не потокобезопасен — грузим последовательно
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(opts.BaseDir)
	results := make([]CheckResult, len(paths))
	for i, path := range paths {
		results[i].Path = path
		id, err := fileSet.Load(path)
		if err != nil {
			results[i].LoadErr = err
			continue
		}
		results[i].File = fileSet.Get(id)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()}))
	g.SetLimit(max(1, min(jobs, len(paths))))

	for i := range results {
		// индексы уникальны для каждой горутины, мьютекс не нужен
		r := &results[i]
		if r.LoadErr != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return checkOne(gctx, r, opts.Cache)
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func checkOne(ctx context.Context, r *CheckResult, cache *DiskCache) error {
	key := CacheKey(r.File.Hash)
	var payload DiskPayload
	if ok, err := cache.Get(key, &payload); err == nil && ok {
		r.Cached = true
		r.Macros = payload.Macros
		r.Err = payloadError(&payload)
		return nil
	}

	r.Contract, r.Err = ParseFile(ctx, r.File)
	if r.Contract != nil {
		for i := range r.Contract.Macros {
			r.Macros = append(r.Macros, r.Contract.Macros[i].Name)
		}
	}
	// Unrecognized — сбой, а не свойство файла; не кешируем
	if r.Err != nil && r.Err.Kind == diag.KindUnrecognized {
		return nil
	}
	if err := cache.Put(key, resultToPayload(r)); err != nil {
		return fmt.Errorf("%s: cache write: %w", r.Path, err)
	}
	return nil
}
