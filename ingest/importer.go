// Package ingest imports raw review datasets: JSON lines in, sanitized and
// deduplicated records out, persisted as the processed dataset the tree and
// the integrity checks are built from.
package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb"

	"github.com/ibrahim-azad/data-integrity-merkle-tree/logger"
	"github.com/ibrahim-azad/data-integrity-merkle-tree/records"
)

var (
	ErrDatasetNotFound = errors.New("raw dataset file not found")
	ErrNoRecords       = errors.New("no records imported")
)

// MaxImportRecords bounds a single import run.
const MaxImportRecords = 1_500_000

// Importer reads a named raw dataset below DataDir and writes the processed
// form next to it:
//
//	<DataDir>/raw/<dataset>.json        one JSON object per line
//	<DataDir>/processed/<dataset>_proc.json
type Importer struct {
	Dataset string
	DataDir string
	// Progress enables a terminal progress bar during the line scan.
	Progress bool
	Log      logger.Logger
}

func (im *Importer) rawPath() string {
	return filepath.Join(im.DataDir, "raw", im.Dataset+".json")
}

func (im *Importer) processedPath() string {
	return filepath.Join(im.DataDir, "processed", im.Dataset+"_proc.json")
}

// Import reads up to limit raw records, sanitizes them and persists the
// processed dataset. The returned reviews are in raw file order with dense
// identifiers already assigned.
func (im *Importer) Import(ctx context.Context, limit int) ([]records.Review, records.Stats, error) {
	if limit < 1 || limit > MaxImportRecords {
		return nil, records.Stats{}, fmt.Errorf("record limit must be within 1..%d, got %d", MaxImportRecords, limit)
	}

	f, err := os.Open(im.rawPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, records.Stats{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, im.rawPath())
		}
		return nil, records.Stats{}, err
	}
	defer f.Close()

	var bar *pb.ProgressBar
	if im.Progress {
		bar = pb.New(limit)
		bar.Start()
	}

	scanner := bufio.NewScanner(f)
	// individual review lines can be large
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	raw := make([]map[string]any, 0, limit)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, records.Stats{}, err
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(line, &m); err != nil {
			return nil, records.Stats{}, fmt.Errorf("parsing %s line %d: %w", im.rawPath(), len(raw)+1, err)
		}
		raw = append(raw, m)
		if bar != nil {
			bar.Increment()
		}
		if len(raw) >= limit {
			break
		}
	}
	if bar != nil {
		bar.Finish()
	}
	if err := scanner.Err(); err != nil {
		return nil, records.Stats{}, fmt.Errorf("reading %s: %w", im.rawPath(), err)
	}
	if len(raw) == 0 {
		return nil, records.Stats{}, ErrNoRecords
	}

	reviews, stats := records.Sanitize(raw)
	if im.Log != nil {
		im.Log.Infow("dataset sanitized",
			"dataset", im.Dataset,
			"loaded", stats.TotalLoaded,
			"valid", stats.ValidRecords,
			"duplicates", stats.DuplicatesRemoved,
			"defaulted_fields", stats.MissingFieldsHandled,
		)
	}

	if err := im.SaveProcessed(reviews); err != nil {
		return nil, records.Stats{}, err
	}
	return reviews, stats, nil
}

// SaveProcessed persists the review set as a compact JSON array.
func (im *Importer) SaveProcessed(reviews []records.Review) error {
	if err := os.MkdirAll(filepath.Dir(im.processedPath()), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(reviews)
	if err != nil {
		return err
	}
	return os.WriteFile(im.processedPath(), data, 0o644)
}

// LoadProcessed reads back a previously imported dataset, preserving order.
func (im *Importer) LoadProcessed() ([]records.Review, error) {
	data, err := os.ReadFile(im.processedPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, im.processedPath())
		}
		return nil, err
	}
	var reviews []records.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", im.processedPath(), err)
	}
	return reviews, nil
}
