package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/datawire/distver/pkg/cliutil"
	"github.com/datawire/distver/pkg/layer"
	"github.com/datawire/distver/pkg/reproducible"
)

func init() {
	var flagPrefix string
	cmd := &cobra.Command{
		Use:   "layer [flags] IN_DIRNAME >OUT_LAYERFILE",
		Short: "Emit a staged release tree as an OCI layer",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(flags *cobra.Command, args []string) error {
			lyr, err := layer.FromTree(args[0], flagPrefix, reproducible.Now())
			if err != nil {
				return err
			}
			return layer.Write(lyr, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&flagPrefix, "add-prefix", "",
		`Add a prefix to the filenames in the tree; forward-slash separated, absolute but NOT starting with a slash.  For example, "usr/src/app".`)
	argparser.AddCommand(cmd)
}
