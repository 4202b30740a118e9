package main

import (
	"os"

	"github.com/vango-dev/svgkit/internal/config"
	svgerrors "github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/pkg/scene"
	"github.com/vango-dev/svgkit/pkg/svg"
)

// loadConfig reads the file named by --config, or searches upwards from
// the working directory and falls back to defaults.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readScene loads and decodes a scene file, returning registered errors
// that point into the file.
func readScene(path string) (scene.Node, []byte, error) {
	format, err := scene.FormatFromPath(path)
	if err != nil {
		return scene.Node{}, nil, svgerrors.FromScene(err, path, nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.Node{}, nil, svgerrors.New("E100").WithDetail("Could not read " + path).Wrap(err)
	}
	root, err := scene.Decode(data, format)
	if err != nil {
		return scene.Node{}, data, svgerrors.FromScene(err, path, data)
	}
	return root, data, nil
}

// buildScene loads a scene file and builds its document.
func buildScene(path string, strict bool) (*svg.Document, error) {
	root, data, err := readScene(path)
	if err != nil {
		return nil, err
	}
	var opts []scene.Option
	if strict {
		opts = append(opts, scene.WithStrict())
	}
	doc, err := scene.Build(root, opts...)
	if err != nil {
		return nil, svgerrors.FromScene(err, path, data)
	}
	return doc, nil
}
