package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/0xJonas/Phi/internal/evaluator"
	phi "github.com/0xJonas/Phi/pkg/embed"
)

// NewPhiCmd creates the phi command tree. Without a subcommand it runs the
// given file, or standard input, or starts the REPL when standard input is
// a terminal.
func NewPhiCmd() *cobra.Command {
	var logToStderr bool
	var verbose int
	var globals string
	cmd := &cobra.Command{
		Use:           "phi [FILE]",
		Short:         "Phi runs programs written in the Phi scripting language",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging(logToStderr, verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			glog.Flush()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runFile(cmd, args[0], globals)
			}
			if isTerminal(cmd.InOrStdin()) {
				return runRepl(cmd, globals)
			}
			return runReader(cmd, cmd.InOrStdin(), "<stdin>", globals)
		},
	}

	cmd.PersistentFlags().BoolVar(&logToStderr, "logtostderr", false, "Log to stderr instead of to files")
	cmd.PersistentFlags().IntVarP(
		&verbose, "verbose", "v", 0, "Enable verbose logging (e.g., v=2 traces every run)")
	cmd.PersistentFlags().StringVar(&globals, "globals", "", "YAML file whose mapping seeds the global scope")

	cmd.AddCommand(newRunCmd(&globals))
	cmd.AddCommand(newEvalCmd(&globals))
	cmd.AddCommand(newFmtCmd())
	cmd.AddCommand(newReplCmd(&globals))

	return cmd
}

// initLogging ensures the glog library has been initialized with the given settings.
func initLogging(logToStderr bool, verbose int) {
	// glog reads its settings from the standard flag set; cobra owns the
	// command line, so only mark the set parsed and poke the values in.
	if !flag.Parsed() {
		_ = flag.CommandLine.Parse(nil)
	}
	if logToStderr {
		_ = flag.Lookup("logtostderr").Value.Set("true")
	}
	if verbose > 0 {
		_ = flag.Lookup("v").Value.Set(strconv.Itoa(verbose))
	}
}

func newInterpreter(cmd *cobra.Command, globals string) (*phi.Interpreter, error) {
	opts := []phi.Option{phi.WithContext(cmd.Context())}
	if globals != "" {
		data, err := os.ReadFile(globals)
		if err != nil {
			return nil, errors.Wrap(err, "reading globals")
		}
		opts = append(opts, phi.WithGlobalsYAML(data))
	}
	return phi.New(opts...)
}

// printResult shows a program value; NULL results print nothing.
func printResult(w io.Writer, result evaluator.Object) {
	if result == nil || result == evaluator.NULL {
		return
	}
	fmt.Fprintln(w, result.Inspect())
}

func printError(w io.Writer, err error) {
	msg := err.Error()
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		msg = red(msg)
	}
	fmt.Fprintln(w, msg)
}

func red(s string) string {
	return "\x1b[31m" + s + "\x1b[0m"
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
