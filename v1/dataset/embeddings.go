package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// embeddingRecord is one line of the embeddings side file.
type embeddingRecord struct {
	ID     string    `json:"id"`
	Vector []float64 `json:"vector"`
}

// Embeddings reads newline-delimited embedding records from r.
//
// Lines that are not valid JSON, or that lack an id or vector, are skipped
// with a warning rather than failing the run; a partially usable side file
// still enriches the documents it covers. The dimension is taken from the
// first valid record.
func (l *Loader) Embeddings(r io.Reader) (*Embeddings, error) {
	out := &Embeddings{vectors: make(map[string][]float64)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var rec embeddingRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			l.log.Warn("skipping invalid JSON line in embeddings file", err, map[string]interface{}{
				"line": line,
			})
			continue
		}
		if rec.ID == "" || rec.Vector == nil {
			l.log.Debug("skipping embeddings line: missing id or vector", nil, map[string]interface{}{
				"line": line,
			})
			continue
		}

		if out.dim == 0 {
			out.dim = len(rec.Vector)
		}
		out.vectors[rec.ID] = rec.Vector
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("embeddings: read input: %w", err)
	}

	return out, nil
}

// EmbeddingsFromFile reads the embeddings side file at path.
//
// A missing file is not an error: enrichment degrades gracefully to a plain
// load, so an empty Embeddings value is returned instead.
func (l *Loader) EmbeddingsFromFile(path string) (*Embeddings, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Info("embeddings file not found", nil, map[string]interface{}{
				"path": path,
			})
			return &Embeddings{vectors: make(map[string][]float64)}, nil
		}
		return nil, fmt.Errorf("embeddings: open %s: %w", path, err)
	}
	defer f.Close()

	emb, err := l.Embeddings(f)
	if err != nil {
		return nil, fmt.Errorf("embeddings: %s: %w", path, err)
	}

	l.log.Info("loaded embeddings", nil, map[string]interface{}{
		"path":      path,
		"records":   emb.Len(),
		"dimension": emb.Dimension(),
	})
	return emb, nil
}
