package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/uniquest/uniquest-backend/internal/platform/logger"
)

// Bundle is the persisted model artifact: the fitted model, the scaler it
// was trained with, and the positional feature names.
type Bundle struct {
	Model        LinearModel    `json:"model"`
	Scaler       StandardScaler `json:"scaler"`
	FeatureNames []string       `json:"feature_names"`
	TrainedAt    time.Time      `json:"trained_at"`
}

// Metrics is the sibling artifact describing held-out fit quality.
type Metrics struct {
	RMSE         float64  `json:"rmse"`
	R2           float64  `json:"r2"`
	NSamples     int      `json:"n_samples"`
	NFeatures    int      `json:"n_features"`
	FeatureNames []string `json:"feature_names"`
}

// SaveBundle writes the bundle to a temp file in the target directory and
// renames it into place, so a concurrent reader never sees a partial
// artifact.
func SaveBundle(path string, b *Bundle) error {
	return writeJSONAtomic(path, b)
}

func LoadBundle(path string) (*Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("decode model bundle %s: %w", path, err)
	}
	return &b, nil
}

func SaveMetrics(path string, m *Metrics) error {
	return writeJSONAtomic(path, m)
}

func writeJSONAtomic(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ModelStore holds the currently loaded bundle behind an atomic pointer.
// The bundle is treated as immutable: retraining writes a new file and
// Reload swaps the reference, so in-flight predictions keep the bundle
// they started with.
type ModelStore struct {
	log  *logger.Logger
	path string
	cur  atomic.Pointer[Bundle]
}

func NewModelStore(log *logger.Logger, path string) *ModelStore {
	return &ModelStore{
		log:  log.With("service", "ModelStore"),
		path: path,
	}
}

// Load reads the bundle from disk and swaps it in. Missing file is not an
// error at startup; the store just stays empty until a model is trained.
func (s *ModelStore) Load() error {
	b, err := LoadBundle(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Warn("No trained model bundle found", "path", s.path)
			return nil
		}
		return err
	}
	s.cur.Store(b)
	s.log.Info("Model bundle loaded", "path", s.path, "trained_at", b.TrainedAt, "n_features", len(b.FeatureNames))
	return nil
}

// Reload re-reads the artifact, typically after the trainer has written a
// new one.
func (s *ModelStore) Reload() error {
	b, err := LoadBundle(s.path)
	if err != nil {
		return err
	}
	s.cur.Store(b)
	s.log.Info("Model bundle reloaded", "path", s.path, "trained_at", b.TrainedAt)
	return nil
}

// Bundle returns the current bundle, or false when no model has been
// trained yet.
func (s *ModelStore) Bundle() (*Bundle, bool) {
	b := s.cur.Load()
	if b == nil {
		return nil, false
	}
	return b, true
}

func (s *ModelStore) Path() string { return s.path }
