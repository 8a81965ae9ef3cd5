package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qualmap/pkg/observability"
)

// logHooks reports pipeline stages and cache traffic at debug level. setup
// registers it when --verbose is given.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
)

func (h logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load started", "source", source)
}

func (h logHooks) OnLoadComplete(_ context.Context, source string, entities int, d time.Duration, err error) {
	h.logger.Debug("load finished", "source", source, "entities", entities, "took", d, "err", err)
}

func (h logHooks) OnSceneStart(_ context.Context, entities, relations int) {
	h.logger.Debug("layout started", "entities", entities, "relations", relations)
}

func (h logHooks) OnSceneComplete(_ context.Context, dropped int, d time.Duration, err error) {
	h.logger.Debug("layout finished", "dropped", dropped, "took", d, "err", err)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render finished", "formats", formats, "took", d, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache write", "type", keyType, "bytes", size)
}

func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}
