package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/datawire/distver/pkg/cliutil"
	"github.com/datawire/distver/pkg/readme"
)

func init() {
	var flagDir *string
	cmd := &cobra.Command{
		Use:   "description [flags] [READMEFILE]",
		Short: "Print the distribution's long description",
		Long: "Prints the first paragraph block of the README file: leading blank " +
			"lines are skipped, and the block ends at the next blank line.  An " +
			"unreadable README yields an empty description, not an error.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			var filename string
			if len(args) == 1 {
				filename = args[0]
			} else {
				root, proj, err := loadProject(*flagDir)
				if err != nil {
					return err
				}
				filename = filepath.Join(root, proj.ReadmeFile)
			}
			fmt.Fprintln(flags.OutOrStdout(), readme.Description(filename))
			return nil
		},
	}
	flagDir = addDirFlag(cmd.Flags())
	argparser.AddCommand(cmd)
}
