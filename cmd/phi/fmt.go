package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/0xJonas/Phi/internal/ast"
	"github.com/0xJonas/Phi/internal/config"
	"github.com/0xJonas/Phi/internal/lexer"
	"github.com/0xJonas/Phi/internal/parser"
	"github.com/0xJonas/Phi/internal/pipeline"
	"github.com/0xJonas/Phi/internal/prettyprinter"
)

type fmtOptions struct {
	write bool
	check bool
	width int
}

func newFmtCmd() *cobra.Command {
	var opts fmtOptions
	cmd := &cobra.Command{
		Use:   "fmt [PATH...]",
		Short: "Print Phi programs in canonical layout",
		Long: "Print Phi programs in canonical layout.\n" +
			"\n" +
			"Directories are searched for " + config.SourceFileExt + " files. Without a PATH the\n" +
			"program is read from standard input. Comments are not reproduced, so\n" +
			"files containing comments are never rewritten in place.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				src, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "reading <stdin>")
				}
				out, err := format(string(src), "<stdin>", opts.width)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			files, err := sourceFiles(args)
			if err != nil {
				return err
			}
			var unformatted int
			for _, path := range files {
				changed, err := formatFile(cmd.OutOrStdout(), path, opts)
				if err != nil {
					return err
				}
				if changed {
					unformatted++
				}
			}
			if opts.check && unformatted > 0 {
				return errors.Errorf("%d file(s) are not formatted", unformatted)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write the result back to the source files")
	cmd.Flags().BoolVar(&opts.check, "check", false, "List files whose layout differs and fail if there are any")
	cmd.Flags().IntVar(&opts.width, "width", 100, "Line width at which lists are broken up")

	return cmd
}

// formatFile reports whether path's layout differs from the canonical one.
func formatFile(w io.Writer, path string, opts fmtOptions) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "reading %s", path)
	}
	src := string(content)
	out, err := format(src, path, opts.width)
	if err != nil {
		return false, err
	}
	changed := out != src

	switch {
	case opts.check:
		if changed {
			fmt.Fprintln(w, path)
		}
	case opts.write:
		if !changed {
			return false, nil
		}
		if lexer.HasComments(src) {
			return false, errors.Errorf("%s: contains comments, not rewriting", path)
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return false, errors.Wrapf(err, "writing %s", path)
		}
	default:
		fmt.Fprint(w, out)
	}
	return changed, nil
}

func format(src, path string, width int) (string, error) {
	program, err := parseSource(src, path)
	if err != nil {
		return "", err
	}
	p := prettyprinter.NewCodePrinterWithWidth(width)
	program.Accept(p)
	return p.String(), nil
}

// parseSource runs the front end only.
func parseSource(src, path string) (*ast.Program, error) {
	ctx := pipeline.NewPipelineContext(src)
	ctx.FilePath = path
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ctx.AstRoot.(*ast.Program), nil
}

// sourceFiles expands directories into the source files below them.
func sourceFiles(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isSourceFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %s", root)
		}
	}
	return files, nil
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if filepath.Ext(path) == ext {
			return true
		}
	}
	return false
}
