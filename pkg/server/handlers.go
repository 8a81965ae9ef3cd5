package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/matzehuels/qualmap/pkg/errors"
	"github.com/matzehuels/qualmap/pkg/render/canvas"
	"github.com/matzehuels/qualmap/pkg/render/export"
	"github.com/matzehuels/qualmap/pkg/render/sink"
)

const maxBodyBytes = 1 << 16

const pageHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>qualmap</title>
<style>
body{margin:0;font-family:system-ui,sans-serif;background:#fafafa}
nav{position:fixed;top:8px;left:8px;display:flex;gap:8px}
nav a,nav button{font:inherit;font-size:13px;padding:4px 10px;border:1px solid #ccc;border-radius:4px;background:#fff;color:#333;text-decoration:none;cursor:pointer}
</style>
</head>
<body>
`

const pageTail = `<nav>
<a href="/export.svg">Export SVG</a>
<button onclick="fetch('/axes/toggle',{method:'POST'}).then(()=>location.reload())">Toggle axes</button>
<button onclick="fetch('/reload',{method:'POST'}).then(()=>location.reload())">Reload</button>
</nav>
</body>
</html>
`

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeBytes(w, "text/plain; charset=utf-8", []byte("ok\n"))
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	var data []byte
	var err error
	s.withCanvas(func(c *canvas.Canvas) {
		data, err = sink.RenderSVG(c)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	var page bytes.Buffer
	page.WriteString(pageHead)
	page.Write(data)
	page.WriteString(pageTail)
	writeBytes(w, "text/html; charset=utf-8", page.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, _ *http.Request) {
	var res *export.Result
	var err error
	s.withCanvas(func(c *canvas.Canvas) {
		res, err = s.opts.Exporter().Export(c)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	writeBytes(w, "image/svg+xml", res.Data)
}

func (s *Server) handleScene(w http.ResponseWriter, _ *http.Request) {
	var data []byte
	var err error
	s.withCanvas(func(c *canvas.Canvas) {
		data, err = sink.RenderJSON(c)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeBytes(w, "application/json", data)
}

func (s *Server) handleViewport(w http.ResponseWriter, _ *http.Request) {
	var st canvas.State
	s.withCanvas(func(c *canvas.Canvas) { st = c.State() })
	writeJSON(w, http.StatusOK, st)
}

type panRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (s *Server) handlePan(w http.ResponseWriter, r *http.Request) {
	var req panRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	var st canvas.State
	s.withCanvas(func(c *canvas.Canvas) {
		c.Viewport().Drag(req.DX, req.DY)
		st = c.State()
	})
	writeJSON(w, http.StatusOK, st)
}

// zoomRequest zooms by Factor when it is set, otherwise by a wheel delta.
// Both anchor at (CX, CY) in screen coordinates.
type zoomRequest struct {
	Factor float64 `json:"factor"`
	DeltaY float64 `json:"delta_y"`
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request) {
	var req zoomRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Factor < 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "factor must be positive"))
		return
	}
	var st canvas.State
	s.withCanvas(func(c *canvas.Canvas) {
		if req.Factor > 0 {
			c.Viewport().ZoomBy(req.Factor, req.CX, req.CY)
		} else {
			c.Viewport().Wheel(req.DeltaY, req.CX, req.CY)
		}
		st = c.State()
	})
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	var st canvas.State
	s.withCanvas(func(c *canvas.Canvas) {
		c.Viewport().Reset(s.now())
		st = c.State()
	})
	writeJSON(w, http.StatusAccepted, st)
}

func (s *Server) handleToggleAxes(w http.ResponseWriter, _ *http.Request) {
	var visible bool
	s.withCanvas(func(c *canvas.Canvas) {
		visible = c.Viewport().ToggleAxes()
	})
	writeJSON(w, http.StatusOK, map[string]bool{"axes": visible})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Load(r.Context()); err != nil {
		s.logger.Error("reload failed", "err", err)
		writeError(w, err)
		return
	}
	var st canvas.State
	var id string
	s.withCanvas(func(c *canvas.Canvas) {
		st = c.State()
		id = c.Scene().ID
	})
	writeJSON(w, http.StatusOK, struct {
		ID string `json:"id"`
		canvas.State
	}{id, st})
}

// decodeBody reads a small JSON body. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
