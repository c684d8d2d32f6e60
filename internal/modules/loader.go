package modules

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/quill-lang/quill/internal/analyzer"
	"github.com/quill-lang/quill/internal/config"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/quill-lang/quill/internal/pipeline"
	"github.com/quill-lang/quill/internal/symbols"
	"github.com/quill-lang/quill/internal/token"
)

// Loader discovers, parses and compiles the modules of a project in
// dependency order. Downstream modules see the exported bindings of
// imports that carry an `as` qualifier, under `alias.name`; an import
// without a qualifier adds no bindings. The semantic passes themselves
// stay single-module.
type Loader struct {
	rootDir  string
	manifest *Manifest
	modules  map[string]*Module
}

func NewLoader(rootDir string) (*Loader, error) {
	manifest, err := LoadManifest(rootDir)
	if err != nil {
		return nil, err
	}

	return &Loader{
		rootDir:  rootDir,
		manifest: manifest,
		modules:  make(map[string]*Module),
	}, nil
}

// Manifest returns the project manifest in effect.
func (l *Loader) Manifest() *Manifest { return l.manifest }

// Load compiles every source file in the project. Modules are
// topologically ordered by their use graph; a cycle is reported as a
// diagnostic on the offending module.
func (l *Loader) Load() ([]*Module, error) {
	paths, err := l.discoverSources()
	if err != nil {
		return nil, err
	}

	// Parse everything first so the import graph is known.
	for _, path := range paths {
		module, err := l.parseFile(path)
		if err != nil {
			return nil, err
		}
		l.modules[module.Name] = module
	}

	names := make([]string, 0, len(l.modules))
	for name := range l.modules {
		names = append(names, name)
	}
	sort.Strings(names)

	var ordered []*Module
	state := make(map[string]int) // 0 unvisited, 1 visiting, 2 done

	var visit func(name string)
	visit = func(name string) {
		module, ok := l.modules[name]
		if !ok || state[name] == 2 {
			return
		}

		if state[name] == 1 {
			module.Diagnostics = append(module.Diagnostics, diagnostics.NewError(
				diagnostics.ErrM002,
				token.Position{},
				name,
			))
			return
		}

		state[name] = 1
		for _, imp := range module.Imports {
			if _, found := l.modules[imp.ModuleName]; !found {
				module.Diagnostics = append(module.Diagnostics, diagnostics.NewError(
					diagnostics.ErrM001,
					imp.Pos(),
					imp.ModuleName,
				))
				continue
			}
			visit(imp.ModuleName)
		}
		state[name] = 2

		ordered = append(ordered, module)
	}

	for _, name := range names {
		visit(name)
	}

	for _, module := range ordered {
		l.analyze(module)
	}

	return ordered, nil
}

func (l *Loader) discoverSources() ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	root := os.DirFS(l.rootDir)

	for _, pattern := range l.manifest.Sources {
		matches, err := doublestar.Glob(root, pattern)
		if err != nil {
			return nil, err
		}

		for _, match := range matches {
			if filepath.Ext(match) != config.SourceFileExt || seen[match] {
				continue
			}

			info, err := fs.Stat(root, match)
			if err != nil || info.IsDir() {
				continue
			}

			seen[match] = true
			paths = append(paths, match)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// parseFile runs the parser stage for one file. The module name is the
// root-relative path without the source extension.
func (l *Loader) parseFile(relPath string) (*Module, error) {
	fullPath := filepath.Join(l.rootDir, relPath)

	source, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, err
	}

	name := config.TrimSourceExt(filepath.ToSlash(relPath))

	ctx := &pipeline.PipelineContext{
		SourceCode: source,
		FilePath:   fullPath,
		ModuleName: name,
	}
	ctx = pipeline.New(&parser.Processor{}).Run(ctx)

	return &Module{
		ID:          uuid.New(),
		Name:        name,
		Path:        fullPath,
		Ast:         ctx.AstRoot,
		Imports:     ctx.Imports,
		Diagnostics: ctx.Errors,
	}, nil
}

// analyze runs the semantic passes for one module, injecting the
// exports of its already-compiled imports under their qualified names.
func (l *Loader) analyze(module *Module) {
	scope := symbols.NewScope()
	analyzer.RegisterBuiltins(scope)
	scope.Enter()

	for _, imp := range module.Imports {
		dep, ok := l.modules[imp.ModuleName]
		if !ok || imp.Qualifier == nil {
			continue
		}

		for name, binding := range dep.Exports {
			scope.AddBinding(
				binding.Kind,
				imp.Qualifier.Name+"."+name,
				binding.Type,
				binding.Pos,
			)
		}
	}

	collector := analyzer.NewTypeCollector(scope)
	collector.CollectModule(module.Ast)

	checker := analyzer.New(scope)
	checker.CheckModule(module.Ast)

	module.Scope = scope
	module.Exports = scope.Bindings()

	diags := append(collector.Diagnostics, checker.Diagnostics...)
	diags = append(diags, scope.Exit()...)

	for _, d := range diags {
		if d.ModulePath == "" {
			d.ModulePath = module.Path
			d.ModuleName = module.Name
		}
	}

	module.Diagnostics = append(module.Diagnostics, diags...)
}
