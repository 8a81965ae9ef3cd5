package pipeline

import (
	"github.com/matzehuels/qualmap/pkg/dataset"
	"github.com/matzehuels/qualmap/pkg/render/scene"
)

// BuildScene lays out ds without caching and logs what the engine absorbed.
func BuildScene(ds *dataset.Dataset, opts Options) (*scene.Scene, error) {
	if err := opts.ValidateForScene(); err != nil {
		return nil, err
	}
	sc, err := scene.Build(opts.SceneInput(ds))
	if err != nil {
		return nil, err
	}
	logSceneStats(opts, sc)
	return sc, nil
}

// logSceneStats reports relations and groups that did not make it into the
// drawing. These are not errors; the input is valid.
func logSceneStats(opts Options, sc *scene.Scene) {
	st := sc.Stats
	if st.Unresolved > 0 {
		opts.Logger.Warn("dropped relations with unknown endpoints", "count", st.Unresolved)
	}
	if st.SelfLoops > 0 {
		opts.Logger.Debug("dropped self relations", "count", st.SelfLoops)
	}
	for _, skip := range st.SkippedEnvelopes {
		opts.Logger.Debug("skipped group envelope", "group", skip.Group, "reason", skip.Reason)
	}
}
