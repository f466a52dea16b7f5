package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/datawire/distver/pkg/cliutil"
)

func init() {
	var flagDir *string
	cmd := &cobra.Command{
		Use:   "resolve [flags]",
		Short: "Print the resolved distribution version",
		Long: "Reads the saved version file at the distribution root.  If it contains " +
			"a literal version, that is the version; if it contains \"__use_git__\", " +
			"the version is derived from \"git describe\", falling back to " +
			"\"unknown\" when Git cannot supply one.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(flags *cobra.Command, _ []string) error {
			_, bld, err := loadBuild(flags.Context(), *flagDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(flags.OutOrStdout(), bld.Version)
			return nil
		},
	}
	flagDir = addDirFlag(cmd.Flags())
	argparser.AddCommand(cmd)
}
