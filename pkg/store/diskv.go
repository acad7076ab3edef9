package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/tourcatalog/pkg/item"
)

// ErrNotFound is returned when no snapshot matches a request id.
var ErrNotFound = errors.New("store: dataset not found")

// Dataset is one imported catalog response.
type Dataset struct {
	RequestID string                         `json:"request_id"`
	Source    string                         `json:"source,omitempty"`
	Items     []item.Item                    `json:"items"`
	Filters   map[string][]item.FilterOption `json:"filters,omitempty"`
	Imported  time.Time                      `json:"imported"`
}

// Meta summarises a stored dataset without its items.
type Meta struct {
	RequestID string    `json:"request_id"`
	Source    string    `json:"source,omitempty"`
	Size      int       `json:"size"`
	Imported  time.Time `json:"imported"`
}

// Persistence stores dataset snapshots so the CLI can browse a catalog without
// re-reading the original response.
type Persistence interface {
	Save(ds *Dataset) error
	Load(requestID string) (*Dataset, error)
	Latest(ctx context.Context) (*Dataset, error)
	List(ctx context.Context) []Meta
	Delete(requestID string) error
}

// Option configures the Persistence returned by Load.
type Option func(*persistence)

// WithLogger sets where unreadable snapshots and index problems are reported.
func WithLogger(log *zap.Logger) Option {
	return func(p *persistence) {
		if log != nil {
			p.log = log
		}
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

func (p *persistence) Save(ds *Dataset) error {
	if ds == nil {
		return errors.New("store: nil dataset")
	}
	if ds.RequestID == "" {
		ds.RequestID = fmt.Sprintf("local-%d", time.Now().UnixNano())
	}
	if ds.Imported.IsZero() {
		ds.Imported = time.Now().UTC()
	}
	data, err := json.Marshal(ds)
	if err != nil {
		return err
	}

	index, err := p.loadIndex()
	if err != nil {
		return fmt.Errorf("store: load index: %w", err)
	}
	if old, ok := index[ds.RequestID]; ok && !old.Imported.Equal(ds.Imported) {
		// Same request imported again: drop the old day bucket entry.
		if err := p.d.Erase(toKey(old.RequestID, old.Imported)); err != nil && !errors.Is(err, os.ErrNotExist) {
			p.log.Warn("erase replaced snapshot",
				zap.String("request_id", old.RequestID),
				zap.Time("imported", old.Imported),
				zap.Error(err))
		}
	}
	if err := p.d.Write(toKey(ds.RequestID, ds.Imported), data); err != nil {
		return fmt.Errorf("store: write %s: %w", ds.RequestID, err)
	}
	index[ds.RequestID] = Meta{
		RequestID: ds.RequestID,
		Source:    ds.Source,
		Size:      len(ds.Items),
		Imported:  ds.Imported,
	}
	if err := p.saveIndex(index); err != nil {
		return fmt.Errorf("store: save index: %w", err)
	}
	return nil
}

func (p *persistence) Load(requestID string) (*Dataset, error) {
	index, err := p.loadIndex()
	if err != nil {
		return nil, fmt.Errorf("store: load index: %w", err)
	}
	meta, ok := index[requestID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, requestID)
	}
	return p.read(toKey(meta.RequestID, meta.Imported))
}

func (p *persistence) Latest(ctx context.Context) (*Dataset, error) {
	metas := p.List(ctx)
	if len(metas) == 0 {
		return nil, ErrNotFound
	}
	return p.Load(metas[len(metas)-1].RequestID)
}

// List returns every stored dataset, oldest import first. Snapshots missing
// from the index are recovered by reading them.
func (p *persistence) List(ctx context.Context) []Meta {
	all, err := p.loadIndex()
	if err != nil {
		p.log.Warn("load index, rebuilding from snapshots", zap.String("path", p.indexPath()), zap.Error(err))
		all = make(map[string]Meta)
	}

	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if strings.HasPrefix(pk.FileName, ".") {
			continue
		}
		id := fromRequestID(pk.FileName)
		if _, ok := all[id]; ok {
			continue
		}
		ds, err := p.read(key)
		if err != nil {
			p.log.Warn("skip unreadable snapshot", zap.String("key", key), zap.Error(err))
			continue
		}
		all[id] = Meta{RequestID: ds.RequestID, Source: ds.Source, Size: len(ds.Items), Imported: ds.Imported}
	}

	list := make([]Meta, 0, len(all))
	for _, meta := range all {
		list = append(list, meta)
	}
	sortMetas(list)
	return list
}

func (p *persistence) Delete(requestID string) error {
	index, err := p.loadIndex()
	if err != nil {
		return fmt.Errorf("store: load index: %w", err)
	}
	meta, ok := index[requestID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, requestID)
	}
	if err := p.d.Erase(toKey(meta.RequestID, meta.Imported)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	delete(index, requestID)
	return p.saveIndex(index)
}

func (p *persistence) read(key string) (*Dataset, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, err
	}
	ds := &Dataset{}
	if err := json.Unmarshal(val, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

const (
	layoutISO = "2006-01-02"
	indexFile = ".datasets.json"
)

func (p *persistence) indexPath() string {
	return filepath.Join(p.basePath, indexFile)
}

func (p *persistence) loadIndex() (map[string]Meta, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]Meta), nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return make(map[string]Meta), nil
	}
	var list []Meta
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	index := make(map[string]Meta, len(list))
	for _, meta := range list {
		if strings.TrimSpace(meta.RequestID) == "" {
			continue
		}
		index[meta.RequestID] = meta
	}
	return index, nil
}

func (p *persistence) saveIndex(idx map[string]Meta) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return err
	}
	list := make([]Meta, 0, len(idx))
	for _, meta := range idx {
		list = append(list, meta)
	}
	sortMetas(list)
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	path := p.indexPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func sortMetas(list []Meta) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Imported.Equal(list[j].Imported) {
			return list[i].RequestID < list[j].RequestID
		}
		return list[i].Imported.Before(list[j].Imported)
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `yyyy-mm-dd-<request id>`, bucketing snapshots by import day.
func toKey(requestID string, imported time.Time) string {
	return fmt.Sprintf("%s-%s", imported.UTC().Format(layoutISO), toRequestID(requestID))
}

func toRequestID(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromRequestID(s string) string {
	id, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromRequestID: %s", err)
	}
	return string(id)
}
