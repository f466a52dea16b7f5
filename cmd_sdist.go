package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/datawire/distver/pkg/cliutil"
	"github.com/datawire/distver/pkg/pipeline"
	"github.com/datawire/distver/pkg/reproducible"
	"github.com/datawire/distver/pkg/sdist"
	"github.com/datawire/distver/pkg/stamp"
)

func init() {
	var flagDir *string
	cmd := &cobra.Command{
		Use:   "sdist [flags]",
		Short: "Build a source-distribution archive",
		Long: "Stages the release tree under dist/NAME-VERSION/, pins the saved " +
			"version file inside it to the resolved version (so that building from " +
			"the archive, where Git metadata is absent, does not degrade to " +
			"\"unknown\"), and archives it as dist/NAME-VERSION.tar.gz.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(flags *cobra.Command, _ []string) error {
			ctx := flags.Context()
			proj, bld, err := loadBuild(ctx, *flagDir)
			if err != nil {
				return err
			}

			baseDir := filepath.Join(bld.Root, "dist", proj.Name+"-"+bld.Version)
			files, err := sdist.Manifest(bld.Root,
				append([]string{proj.VersionHeader}, proj.Exclude...))
			if err != nil {
				return err
			}

			tree := pipeline.Named("make-release-tree", func(ctx context.Context, bld *pipeline.Build) error {
				return sdist.ReleaseTree(ctx, baseDir, bld.Root, files)
			})
			tree = pipeline.After(tree,
				pipeline.Named("pin-version", func(ctx context.Context, bld *pipeline.Build) error {
					return stamp.PinMarker(baseDir, proj.VersionFile, bld.Version)
				}))
			// ReleaseTree creates dist/ on the way to baseDir.
			archive := pipeline.Named("archive", func(ctx context.Context, bld *pipeline.Build) error {
				return sdist.Archive(baseDir, baseDir+".tar.gz", reproducible.Now())
			})
			return pipeline.Run(ctx, bld, tree, archive)
		},
	}
	flagDir = addDirFlag(cmd.Flags())
	argparser.AddCommand(cmd)
}
