// Package pkg provides the core libraries for qualmap, a renderer for
// qualitative maps.
//
// # Overview
//
// A qualitative map places actors on two judgement axes (for example supply
// chain position against influence), sizes them by weight, colors them by
// group, wraps each group in a soft envelope and draws the relations between
// them as curved links. The pkg directory is organized as:
//
//  1. [dataset] - Normalized entities, relations and axis settings
//  2. [io] - Workbook import (JSON, YAML, TOML) and atomic file export
//  3. [render] - Scales, envelopes, links, markers, labels, legend, viewport, export
//  4. [pipeline] - Orchestration (load → scene → render) with caching
//  5. [server] - HTTP surface for a live map
//  6. [cache], [config], [errors], [observability], [buildinfo], [fonts] - Support
//
// # Architecture
//
//	Workbook (.json / .yaml / .toml)
//	         ↓
//	    [io] + [dataset] (parse, validate, normalize)
//	         ↓
//	    [render/scene] (scales → envelopes → links → markers → labels → legend)
//	         ↓
//	    [render/canvas] + [render/viewport] (live pan, zoom, reset, axes)
//	         ↓
//	    [render/export] (framed static snapshot)
//	         ↓
//	    SVG / interactive SVG / PNG / PDF / JSON
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "fishmarket.yaml",
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatInteractive},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("map.svg", result.Artifacts[pipeline.FormatSVG], 0o644)
//
// Or drive a live canvas directly:
//
//	sc, _ := scene.Build(scene.Input{Dataset: ds, Frame: scale.Frame{Width: 1200, Height: 800}})
//	c := canvas.New(sc)
//	c.Viewport().Drag(40, 0)
//	res, _ := export.Export(c) // ignores the pan
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/dataset
// [io]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/render
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/render/scene
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/render/canvas
// [render/viewport]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/render/viewport
// [render/export]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/render/export
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/buildinfo
// [fonts]: https://pkg.go.dev/github.com/matzehuels/qualmap/pkg/fonts
package pkg
