package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/0xJonas/Phi/internal/config"
	"github.com/0xJonas/Phi/internal/lexer"
	"github.com/0xJonas/Phi/internal/parser"
	"github.com/0xJonas/Phi/internal/pipeline"
	"github.com/0xJonas/Phi/internal/token"
	phi "github.com/0xJonas/Phi/pkg/embed"
)

const banner = "Phi REPL. Enter expressions; :quit or Ctrl-D exits."

func newReplCmd(globals *string) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, *globals)
		},
	}
}

// prompter reads one line of input; *liner.State is one.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func runRepl(cmd *cobra.Command, globals string) error {
	in, err := newInterpreter(cmd, globals)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, config.HistoryFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := &replSession{
		in:      in,
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
		history: ln.AppendHistory,
	}
	session.loop(ln)
	return nil
}

// replSession evaluates entries against one interpreter so declarations
// carry over from one entry to the next.
type replSession struct {
	in      *phi.Interpreter
	out     io.Writer
	errOut  io.Writer
	history func(string)
}

func (s *replSession) loop(p prompter) {
	for {
		code, ok := readUntilParsed(p, config.PromptMain, config.PromptCont)
		if !ok {
			fmt.Fprintln(s.out)
			return
		}
		if !s.handle(code) {
			return
		}
	}
}

// handle evaluates one entry and reports whether the session goes on.
func (s *replSession) handle(code string) bool {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, ":") {
		switch strings.ToLower(trimmed) {
		case ":quit", ":q":
			return false
		default:
			fmt.Fprintln(s.out, "unknown command. Type :quit to exit.")
		}
		return true
	}

	if s.history != nil {
		s.history(strings.ReplaceAll(code, "\n", " "))
	}
	result, err := s.in.Exec(code, "<repl>")
	if err != nil {
		printError(s.errOut, err)
		return true
	}
	fmt.Fprintln(s.out, result.Inspect())
	return true
}

// readUntilParsed reads lines until they parse or fail for a reason other
// than running out of input. ok is false at end of input.
func readUntilParsed(p prompter, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = p.Prompt(prompt)
		} else {
			line, err = p.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C drops the pending entry
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src only fails to parse because it ends early.
func incomplete(src string) bool {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(pipeline.NewPipelineContext(src))
	if len(ctx.Errors) == 0 {
		return false
	}
	for _, diag := range ctx.Errors {
		if diag.Token.Type == token.EOF {
			return true
		}
		if diag.Token.Type == token.ILLEGAL && diag.Token.Literal == "string was not terminated" {
			return true
		}
	}
	return false
}
