package dataset

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger defines the interface for logging operations within the dataset package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Loader reads dataset and embedding files.
//
// Two on-disk dataset layouts exist in the wild: a single JSON array
// (Solr/Vespa packaging) and newline-delimited JSON with one document per line
// (Elasticsearch/OpenSearch packaging). Documents sniffs the layout from the
// first non-space byte so engine packages never need to care.
type Loader struct {
	log Logger
}

// NewLoader constructs a Loader. A nil logger is replaced with a no-op one so
// the Loader is usable in tests without wiring.
func NewLoader(log Logger) *Loader {
	if log == nil {
		log = nopLogger{}
	}
	return &Loader{log: log}
}

// Documents reads a full dataset from r.
// A leading '[' selects JSON-array parsing; anything else is treated as
// newline-delimited JSON. Blank lines are skipped.
func (l *Loader) Documents(r io.Reader) ([]Document, error) {
	br := bufio.NewReader(r)

	first, err := firstNonSpace(br)
	if err != nil {
		return nil, fmt.Errorf("dataset: empty input: %w", err)
	}

	if first == '[' {
		var docs []Document
		if err := json.NewDecoder(br).Decode(&docs); err != nil {
			return nil, fmt.Errorf("dataset: decode JSON array: %w", err)
		}
		return docs, nil
	}

	var docs []Document
	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var doc Document
		if err := json.Unmarshal([]byte(text), &doc); err != nil {
			return nil, fmt.Errorf("dataset: decode line %d: %w", line, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: read input: %w", err)
	}
	return docs, nil
}

// DocumentsFromFile reads the dataset at path. A missing dataset file is an
// error: there is nothing meaningful to bootstrap without one.
func (l *Loader) DocumentsFromFile(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	docs, err := l.Documents(f)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}

	l.log.Info("loaded dataset", nil, map[string]interface{}{
		"path":      path,
		"documents": len(docs),
	})
	return docs, nil
}

// firstNonSpace peeks past leading whitespace without consuming input.
func firstNonSpace(br *bufio.Reader) (byte, error) {
	for n := 1; ; n++ {
		peeked, err := br.Peek(n)
		if err != nil {
			return 0, err
		}
		b := peeked[n-1]
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, nil
		}
	}
}

// nopLogger discards everything. Used when no logger is supplied.
type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}
