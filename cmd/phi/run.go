package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRunCmd(globals *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Run a Phi program and print its value",
		Long: "Run a Phi program and print its value.\n" +
			"\n" +
			"A FILE of - reads the program from standard input. The value of the\n" +
			"last expression, or of a top-level return, is printed unless it is NULL.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return runReader(cmd, cmd.InOrStdin(), "<stdin>", *globals)
			}
			return runFile(cmd, args[0], *globals)
		},
	}
}

func newEvalCmd(globals *string) *cobra.Command {
	return &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Evaluate an expression and print its value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := newInterpreter(cmd, *globals)
			if err != nil {
				return err
			}
			result, err := in.Exec(strings.Join(args, " "), "<eval>")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Inspect())
			return nil
		},
	}
}

func runFile(cmd *cobra.Command, path, globals string) error {
	in, err := newInterpreter(cmd, globals)
	if err != nil {
		return err
	}
	result, err := in.LoadFile(path)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), result)
	return nil
}

func runReader(cmd *cobra.Command, r io.Reader, name, globals string) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}
	in, err := newInterpreter(cmd, globals)
	if err != nil {
		return err
	}
	result, err := in.Exec(string(src), name)
	if err != nil {
		return err
	}
	printResult(cmd.OutOrStdout(), result)
	return nil
}
