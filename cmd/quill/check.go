package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/analyzer"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/modules"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/quill-lang/quill/internal/pipeline"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Parse and analyze a file or project, reporting diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			if info.IsDir() {
				return checkProject(path)
			}
			return checkFile(path)
		},
	}
}

func checkFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ctx := &pipeline.PipelineContext{
		SourceCode: source,
		FilePath:   path,
	}
	ctx = pipeline.New(&parser.Processor{}, &analyzer.Processor{}).Run(ctx)

	reporter := newReporter()
	for _, d := range ctx.Errors {
		reporter.report(d, source)
	}
	reporter.summarize()

	if diagnostics.HasErrors(ctx.Errors) {
		os.Exit(1)
	}
	return nil
}

func checkProject(rootDir string) error {
	loader, err := modules.NewLoader(rootDir)
	if err != nil {
		return err
	}

	mods, err := loader.Load()
	if err != nil {
		return err
	}

	reporter := newReporter()
	hasErrors := false

	for _, mod := range mods {
		if len(mod.Diagnostics) == 0 {
			continue
		}

		source, readErr := os.ReadFile(mod.Path)
		if readErr != nil {
			source = nil
		}

		for _, d := range mod.Diagnostics {
			reporter.report(d, source)
		}

		if mod.HasErrors() {
			hasErrors = true
		}
	}

	reporter.summarize()

	if hasErrors {
		os.Exit(1)
	}

	fmt.Printf("checked %d modules\n", len(mods))
	return nil
}
