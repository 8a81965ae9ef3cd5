package sink

import (
	"encoding/json"

	"github.com/matzehuels/qualmap/pkg/render/geom"
	"github.com/matzehuels/qualmap/pkg/render/scene"
	"github.com/matzehuels/qualmap/pkg/render/viewport"
)

type jsonOutput struct {
	*scene.Scene
	View jsonView `json:"view"`
}

type jsonView struct {
	Transform viewport.Transform `json:"transform"`
	Axes      bool               `json:"axes"`
	LegendPos geom.Point         `json:"legend_pos"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
}

// RenderJSON exports the scene geometry together with the current view state
// as a pretty-printed JSON document.
func RenderJSON(v View) ([]byte, error) {
	w, h := v.PixelSize()
	return json.MarshalIndent(jsonOutput{
		Scene: v.Scene(),
		View: jsonView{
			Transform: v.Transform(),
			Axes:      v.AxesVisible(),
			LegendPos: v.LegendPos(),
			Width:     w,
			Height:    h,
		},
	}, "", "  ")
}
