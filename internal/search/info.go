package search

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IndexInfo is the artifact the indexer writes describing what the
// search subsystem can serve. Query-time capability selection reads
// this once at startup instead of probing backends per request.
type IndexInfo struct {
	Backend       string `json:"backend"`
	NLectures     int    `json:"n_lectures"`
	HasEmbeddings bool   `json:"has_embeddings"`
	ModelName     string `json:"model_name,omitempty"`
}

// LoadIndexInfo reads the artifact. A missing or unreadable file means
// no indexing has run: only the text backends are available.
func LoadIndexInfo(path string) IndexInfo {
	fallback := IndexInfo{Backend: BackendBM25}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	var info IndexInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return fallback
	}
	return info
}

// SaveIndexInfo writes the artifact via temp file and rename, same
// contract as the model bundle.
func SaveIndexInfo(path string, info IndexInfo) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(info, "", "  ")
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
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace index info %s: %w", path, err)
	}
	return nil
}
