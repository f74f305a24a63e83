package cli

import (
	"context"

	"github.com/matzehuels/vestools/pkg/errors"
	"github.com/matzehuels/vestools/pkg/filament"
	"github.com/matzehuels/vestools/pkg/hoc"
	"github.com/matzehuels/vestools/pkg/pipeline"
)

// loadOpts are the input flags shared by the inspection commands.
type loadOpts struct {
	component string
	root      string
	refresh   bool
}

// session is one loaded input with the runner that loaded it.
type session struct {
	runner *pipeline.Runner
	loaded *pipeline.Loaded
}

// open loads input through a cached runner. The caller must Close the
// session.
func (c *CLI) open(ctx context.Context, input string, refresh bool) (*session, error) {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return nil, err
	}
	loaded, err := runner.Load(ctx, pipeline.Options{Input: input, Refresh: refresh, Logger: c.Logger})
	if err != nil {
		runner.Close()
		return nil, err
	}
	if len(loaded.Components) == 0 {
		runner.Close()
		return nil, errors.New(errors.ErrCodeInvalidInput, "no filaments found in %s", input)
	}
	c.Logger.Debug("loaded", "input", input, "components", len(loaded.Components), "cached", loaded.Hit)
	return &session{runner: runner, loaded: loaded}, nil
}

func (s *session) Close() error { return s.runner.Close() }

func (s *session) components() hoc.Components { return s.loaded.Components }

// build reconstructs component id, defaulting to the first component.
func (s *session) build(id string) (string, *filament.Filament, error) {
	if id == "" {
		id = s.loaded.Components.IDs()[0]
	} else if err := errors.ValidateComponentID(id); err != nil {
		return "", nil, err
	}
	f, err := s.runner.Build(s.loaded.Components, id)
	return id, f, err
}

// buildLayered builds component id and layers it from root.
func (s *session) buildLayered(id, root string) (string, *filament.Filament, error) {
	id, f, err := s.build(id)
	if err != nil {
		return "", nil, err
	}
	if _, err := s.runner.Layer(f, root); err != nil {
		return "", nil, err
	}
	return id, f, nil
}
