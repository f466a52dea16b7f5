package main

import (
	"context"
	"path/filepath"

	"github.com/datawire/dlib/dexec"
	"github.com/spf13/cobra"

	"github.com/datawire/distver/pkg/cliutil"
	"github.com/datawire/distver/pkg/pipeline"
	"github.com/datawire/distver/pkg/stamp"
)

func init() {
	var flagDir *string
	cmd := &cobra.Command{
		Use:   "build-ext [flags] [-- COMMAND...]",
		Short: "Stamp the version header, then run the native build",
		Long: "Overwrites the generated version header so that native code sees the " +
			"resolved version at compile time, and then delegates to COMMAND (the " +
			"ordinary extension-build step), run at the distribution root.  With no " +
			"COMMAND, only the header is written.",
		Args: cliutil.WrapPositionalArgs(cobra.ArbitraryArgs),
		RunE: func(flags *cobra.Command, args []string) error {
			ctx := flags.Context()
			proj, bld, err := loadBuild(ctx, *flagDir)
			if err != nil {
				return err
			}

			compile := pipeline.Named("build-ext", func(ctx context.Context, bld *pipeline.Build) error {
				if len(args) == 0 {
					return nil
				}
				// Leave .Stdout/.Stderr unset so that dexec logs
				// the subprocess output.
				sub := dexec.CommandContext(ctx, args[0], args[1:]...)
				sub.Dir = bld.Root
				return sub.Run()
			})
			compile = pipeline.Before(compile,
				pipeline.Named("stamp-header", func(ctx context.Context, bld *pipeline.Build) error {
					return stamp.WriteHeader(
						filepath.Join(bld.Root, proj.VersionHeader), bld.Version)
				}))
			return pipeline.Run(ctx, bld, compile)
		},
	}
	flagDir = addDirFlag(cmd.Flags())
	argparser.AddCommand(cmd)
}
