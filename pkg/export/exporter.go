package export

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pagecraft/pkg/cache"
	"github.com/matzehuels/pagecraft/pkg/editor"
	"github.com/matzehuels/pagecraft/pkg/errors"
	"github.com/matzehuels/pagecraft/pkg/observability"
)

// archiveFormat identifies zip archives in cache keys.
const archiveFormat = "zip"

// Archive is a packaged export ready for download.
type Archive struct {
	Name   string // suggested file name
	Data   []byte // zip bytes
	Hash   string // content hash of the source snapshot
	Cached bool   // served from the artifact cache
}

// Exporter renders and packages snapshots, caching archives by content.
// A zero Exporter works and never caches.
type Exporter struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger
}

// NewExporter returns an exporter backed by c. A nil cache disables caching.
func NewExporter(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Exporter {
	return &Exporter{Cache: c, Keyer: keyer, TTL: cache.DefaultExportTTL, Logger: logger}
}

// Export renders s and packages it. Cache failures are logged and never fail
// the export; render or packaging failures return an EXPORT_FAILED error and
// no archive.
func (x *Exporter) Export(ctx context.Context, s editor.Snapshot) (Archive, error) {
	start := time.Now()
	observability.Export().OnExportStart(ctx, len(s.Elements))

	a, err := x.export(ctx, s)
	observability.Export().OnExportComplete(ctx, len(a.Data), a.Cached, time.Since(start), err)
	if err != nil {
		return Archive{}, err
	}
	return a, nil
}

func (x *Exporter) export(ctx context.Context, s editor.Snapshot) (Archive, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return Archive{}, errors.Wrap(errors.ErrCodeExport, err, "encode snapshot")
	}
	a := Archive{Name: ArchiveName, Hash: cache.Hash(raw)}

	c := x.cache()
	key := x.keyer().ExportKey(a.Hash, cache.ExportKeyOpts{Format: archiveFormat})

	if data, hit, err := c.Get(ctx, key); err != nil {
		x.logger().Warn("export cache read failed", "err", err)
	} else if hit {
		a.Data, a.Cached = data, true
		return a, nil
	}

	data, err := Zip(Render(s))
	if err != nil {
		return Archive{}, errors.Wrap(errors.ErrCodeExport, err, "package export")
	}
	a.Data = data

	if err := c.Set(ctx, key, data, x.ttl()); err != nil {
		x.logger().Warn("export cache write failed", "err", err)
	}
	x.logger().Debug("export rendered", "elements", len(s.Elements), "bytes", len(data))
	return a, nil
}

func (x *Exporter) cache() cache.Cache {
	if x.Cache == nil {
		return cache.NewNullCache()
	}
	return x.Cache
}

func (x *Exporter) keyer() cache.Keyer {
	if x.Keyer == nil {
		return cache.NewDefaultKeyer()
	}
	return x.Keyer
}

func (x *Exporter) ttl() time.Duration {
	if x.TTL <= 0 {
		return cache.DefaultExportTTL
	}
	return x.TTL
}

func (x *Exporter) logger() *log.Logger {
	if x.Logger == nil {
		return log.Default()
	}
	return x.Logger
}
