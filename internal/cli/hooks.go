package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagecraft/pkg/observability"
)

// logHooks reports export, auth and cache events through the CLI logger.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks installs logHooks as the process-wide observability hooks.
func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetExportHooks(h)
	observability.SetAuthHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnExportStart(_ context.Context, elementCount int) {
	h.logger.Debug("export started", "elements", elementCount)
}

func (h logHooks) OnExportComplete(_ context.Context, size int, cached bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("export failed", "err", err, "duration", d)
		return
	}
	h.logger.Info("export complete", "bytes", size, "cached", cached, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnRegister(_ context.Context, err error) {
	if err != nil {
		h.logger.Debug("registration rejected", "err", err)
		return
	}
	h.logger.Info("user registered")
}

func (h logHooks) OnLogin(_ context.Context, err error) {
	if err != nil {
		h.logger.Debug("login rejected", "err", err)
		return
	}
	h.logger.Debug("user logged in")
}

func (h logHooks) OnTokenRejected(_ context.Context, reason string) {
	h.logger.Debug("access token rejected", "reason", reason)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
