// Copyright (C) 2022  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

// Package pipeline models a packaging run as a sequence of stages, with
// support for hooking extra behavior on to either side of a stage.
package pipeline

import (
	"context"
	"fmt"

	"github.com/datawire/dlib/dlog"
)

// A Build carries the values that every stage consumes.  The version is
// resolved exactly once, before any stage runs, and is read-only from
// then on; stages receive it here rather than looking it up themselves.
type Build struct {
	// Root is the absolute path of the distribution root.
	Root string

	// Version is the resolved version string.
	Version string
}

// A Stage is one step of a packaging run.
type Stage interface {
	Name() string
	Run(ctx context.Context, bld *Build) error
}

type stageFunc struct {
	name string
	fn   func(context.Context, *Build) error
}

func (st stageFunc) Name() string { return st.name }

func (st stageFunc) Run(ctx context.Context, bld *Build) error { return st.fn(ctx, bld) }

// Named adapts a bare function into a Stage.
func Named(name string, fn func(context.Context, *Build) error) Stage {
	return stageFunc{name: name, fn: fn}
}

// Before returns a Stage that runs hook and then, if it succeeded, the
// default stage.  It takes the place of subclass-style "do the extra
// thing, then call the parent implementation" hooking.
func Before(stage, hook Stage) Stage {
	return Named(stage.Name(), func(ctx context.Context, bld *Build) error {
		if err := hook.Run(ctx, bld); err != nil {
			return fmt.Errorf("%s: %w", hook.Name(), err)
		}
		return stage.Run(ctx, bld)
	})
}

// After returns a Stage that runs the default stage and then, if it
// succeeded, hook.
func After(stage, hook Stage) Stage {
	return Named(stage.Name(), func(ctx context.Context, bld *Build) error {
		if err := stage.Run(ctx, bld); err != nil {
			return err
		}
		if err := hook.Run(ctx, bld); err != nil {
			return fmt.Errorf("%s: %w", hook.Name(), err)
		}
		return nil
	})
}

// Run drives the build through each of the stages, in order, stopping at
// the first failure.
func Run(ctx context.Context, bld *Build, stages ...Stage) error {
	for _, stage := range stages {
		dlog.Infof(ctx, "running stage %q", stage.Name())
		if err := stage.Run(ctx, bld); err != nil {
			return fmt.Errorf("stage %q: %w", stage.Name(), err)
		}
	}
	return nil
}
