package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/datawire/distver/pkg/pipeline"
	"github.com/datawire/distver/pkg/project"
	"github.com/datawire/distver/pkg/version"
)

func addDirFlag(flags *pflag.FlagSet) *string {
	return flags.StringP("dir", "C", ".",
		"Operate on the distribution rooted at `DIR`")
}

func loadProject(dir string) (string, *project.Project, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	proj, err := project.Load(filepath.Join(root, project.ConfigFile))
	if err != nil {
		return "", nil, err
	}
	if proj.Name == "" {
		proj.Name = filepath.Base(root)
	}
	return root, proj, nil
}

// loadBuild resolves the version exactly once; everything downstream
// reads it from the returned Build rather than re-resolving.
func loadBuild(ctx context.Context, dir string) (*project.Project, *pipeline.Build, error) {
	root, proj, err := loadProject(dir)
	if err != nil {
		return nil, nil, err
	}
	ver, err := version.Resolve(ctx, root, proj.VersionFile)
	if err != nil {
		return nil, nil, err
	}
	return proj, &pipeline.Build{Root: root, Version: ver}, nil
}
