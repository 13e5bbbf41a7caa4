package leads

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/programme-lv/contactform/conf"
	"github.com/programme-lv/contactform/logger"
)

// OpenBucketFunc returns a store bound to the named bucket.
type OpenBucketFunc func(ctx context.Context, bucket string) (ObjectStore, error)

type Exporter struct {
	openBucket OpenBucketFunc
	now        func() time.Time
}

type Option func(*Exporter)

// WithClock replaces time.Now when defaulting the month.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

func NewExporter(openBucket OpenBucketFunc, opts ...Option) *Exporter {
	e := &Exporter{
		openBucket: openBucket,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type ExportRequest struct {
	Bucket string
	// Year and Month are both set or both nil; nil means the current UTC month.
	Year  *int
	Month *int
	// OutPath defaults to {OutDir}/leads-{year}-{month}.xlsx.
	OutPath string
	OutDir  string
}

type Summary struct {
	Count   int    `json:"count"`
	File    string `json:"file"`
	Bucket  string `json:"bucket"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Skipped int    `json:"skipped"`
}

// ResolvePeriod applies the defaulting and range rules for the export month.
func ResolvePeriod(year, month *int, now time.Time) (int, int, error) {
	if (year == nil) != (month == nil) {
		return 0, 0, newErrPartialPeriod()
	}
	if year == nil {
		now = now.UTC()
		return now.Year(), int(now.Month()), nil
	}
	if *month < 1 || *month > 12 {
		return 0, 0, newErrMonthOutOfRange(*month)
	}
	return *year, *month, nil
}

func DefaultOutPath(dir string, year, month int) string {
	if dir == "" {
		dir = conf.DefaultExportDir
	}
	return filepath.Join(dir, fmt.Sprintf("leads-%d-%02d.xlsx", year, month))
}

// ExportMonth writes every submission of one month to an xlsx file, ordered
// by submittedAt. Objects that cannot be fetched are skipped and counted;
// documents that are not JSON objects become rows of empty cells.
func (e *Exporter) ExportMonth(ctx context.Context, req ExportRequest) (*Summary, error) {
	if req.Bucket == "" {
		return nil, newErrNoBucket()
	}
	year, month, err := ResolvePeriod(req.Year, req.Month, e.now())
	if err != nil {
		return nil, err
	}
	outPath := req.OutPath
	if outPath == "" {
		outPath = DefaultOutPath(req.OutDir, year, month)
	}
	if err := CheckOutPath(outPath); err != nil {
		return nil, err
	}

	store, err := e.openBucket(ctx, req.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", req.Bucket, err)
	}

	rows, skipped, err := FetchMonth(ctx, store, year, month)
	if err != nil {
		return nil, err
	}

	if err := WriteXlsx(rows, outPath); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("leads exported",
		"bucket", req.Bucket,
		"year", year,
		"month", month,
		"count", len(rows),
		"skipped", skipped,
		"file", outPath)

	return &Summary{
		Count:   len(rows),
		File:    outPath,
		Bucket:  req.Bucket,
		Year:    year,
		Month:   month,
		Skipped: skipped,
	}, nil
}

// FetchMonth scans the month and returns its rows sorted by submittedAt.
// Only the listing itself can fail; per-object problems are logged.
func FetchMonth(ctx context.Context, store ObjectStore, year, month int) ([]Row, int, error) {
	log := logger.FromContext(ctx)

	keys, err := ScanPartition(ctx, store, year, month)
	if err != nil {
		return nil, 0, err
	}

	rows := make([]Row, 0, len(keys))
	skipped := 0
	for _, key := range keys {
		doc, err := store.Download(ctx, key)
		if err != nil {
			log.Warn("skipping submission that could not be fetched", "key", key, "error", err)
			skipped++
			continue
		}
		row, err := NormalizeRecord(doc)
		if err != nil {
			log.Warn("stored submission is malformed, exporting empty row", "key", key, "error", err)
			row = emptyRow()
		}
		rows = append(rows, row)
	}

	// fixed-width zero-padded timestamps sort chronologically as strings
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SubmittedAt() < rows[j].SubmittedAt()
	})

	return rows, skipped, nil
}
