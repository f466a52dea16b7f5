// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package cliutil has utilities for setting up a well-behaved cobra
// command tree.
package cliutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// OnlySubcommands is a cobra.PositionalArgs that is similar to
// cobra.NoArgs, but prints a better error message, with suggestions for
// likely typos.
func OnlySubcommands(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	err := fmt.Errorf("invalid subcommand %q", args[0])
	if cmd.SuggestionsMinimumDistance <= 0 {
		cmd.SuggestionsMinimumDistance = 2
	}
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		err = fmt.Errorf("%w\nDid you mean one of these?\n\t%s",
			err, strings.Join(suggestions, "\n\t"))
	}
	return cmd.FlagErrorFunc()(cmd, err)
}

// RunSubcommands is for use as the RunE of commands that do nothing
// themselves but have subcommands.  Setting a RunE matters even when
// there is nothing to run: without one, cobra treats a bare invocation as
// success, and it shouldn't be success.
func RunSubcommands(cmd *cobra.Command, args []string) error {
	cmd.SetOutput(cmd.ErrOrStderr())
	cmd.HelpFunc()(cmd, args)
	os.Exit(2)
	return nil
}

// WrapPositionalArgs wraps a cobra.PositionalArgs to have it pass any
// errors through FlagErrorFunc, for consistent bad-usage reporting.
func WrapPositionalArgs(inner cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return FlagErrorFunc(cmd, inner(cmd, args))
	}
}

// FlagErrorFunc is for (*cobra.Command).SetFlagErrorFunc; it establishes
// GNU-ish behavior for invalid usage.
//
// On error, FlagErrorFunc calls os.Exit and does NOT return; every error
// that comes back from (*cobra.Command).Execute is therefore an execution
// error, never a usage error.
func FlagErrorFunc(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	errStr := strings.TrimRight(err.Error(), "\n")
	if strings.Contains(errStr, "\n") {
		// Multi-line error; insert a blank line before the "See
		// --help" line.
		errStr += "\n"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\nSee '%s --help' for more information.\n",
		cmd.CommandPath(), errStr, cmd.CommandPath())
	os.Exit(2)
	return nil
}
