package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/datawire/distver/pkg/cliutil"
	"github.com/datawire/distver/pkg/readme"
)

func init() {
	var flagDir *string
	cmd := &cobra.Command{
		Use:   "metadata [flags]",
		Short: "Print the distribution's core metadata",
		Long: "Renders a PKG-INFO-style metadata stanza from distver.yaml, the " +
			"resolved version, and the long description extracted from the README.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(flags *cobra.Command, _ []string) error {
			proj, bld, err := loadBuild(flags.Context(), *flagDir)
			if err != nil {
				return err
			}
			description := readme.Description(filepath.Join(bld.Root, proj.ReadmeFile))
			return proj.WriteMetadata(flags.OutOrStdout(), bld.Version, description)
		},
	}
	flagDir = addDirFlag(cmd.Flags())
	argparser.AddCommand(cmd)
}
