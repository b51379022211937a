// Package importer drives an import run: every matching file of the source directory is
// parsed, extracted and loaded in its own transaction, so a bad file never leaves partial
// rows behind and never stops the files after it.
package importer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"droscher.com/BeerImporter/configs"
	"droscher.com/BeerImporter/pkg/document"
	"droscher.com/BeerImporter/pkg/extract"
	"droscher.com/BeerImporter/pkg/model"
	"droscher.com/BeerImporter/pkg/repository"
)

var ErrStoreUnavailable = errors.New("store unavailable")

// FileResult is the outcome of importing one file. Rows counts the extracted rows per kind;
// rows already present in the store are included.
type FileResult struct {
	Name     string
	Rows     map[model.Kind]int
	Err      error
	Duration time.Duration
}

type Report struct {
	Files []FileResult
}

func (r *Report) Failed() int {
	failed := 0

	for _, file := range r.Files {
		if file.Err != nil {
			failed++
		}
	}

	return failed
}

// Err combines the errors of all failed files, or returns nil when every file loaded.
func (r *Report) Err() error {
	var errs error

	for _, file := range r.Files {
		if file.Err != nil {
			multierr.AppendInto(&errs, fmt.Errorf("%s: %w", file.Name, file.Err))
		}
	}

	return errs
}

type Importer struct {
	conf      configs.Import
	fs        afero.Fs
	store     repository.Store
	extractor *extract.Extractor
	logger    *zap.Logger
}

func New(conf configs.Import, fs afero.Fs, store repository.Store, logger *zap.Logger) *Importer {
	return &Importer{
		conf:      conf,
		fs:        fs,
		store:     store,
		extractor: extract.NewExtractor(logger),
		logger:    logger,
	}
}

// Run imports every file of the configured directory in name order. File failures are
// recorded in the report; only a lost store connection or a cancelled context ends the run
// early, in which case the report covers the files processed so far.
func (i *Importer) Run(ctx context.Context) (*Report, error) {
	files, err := i.listFiles()
	if err != nil {
		return nil, err
	}

	i.logger.Info("starting import", zap.String("dir", i.conf.Dir), zap.Int("files", len(files)))

	report := &Report{Files: make([]FileResult, 0, len(files))}

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		i.logger.Info("processing file", zap.String("file", name))

		result, err := i.ImportFile(ctx, filepath.Join(i.conf.Dir, name))
		report.Files = append(report.Files, *result)

		if err != nil {
			i.logger.Error("failed to import file", zap.String("file", name), zap.Error(err))

			if repository.IsConnectionError(err) {
				return report, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
			}

			if ctx.Err() != nil {
				return report, ctx.Err()
			}

			continue
		}

		i.logger.Info("imported file", zap.String("file", name), zap.Any("rows", result.Rows),
			zap.Duration("duration", result.Duration))
	}

	i.logger.Info("finished import", zap.Int("files", len(report.Files)), zap.Int("failed", report.Failed()))

	return report, nil
}

// ImportFile loads one file inside a single store transaction. The returned result is never
// nil; on error its Err field holds the same error.
func (i *Importer) ImportFile(ctx context.Context, path string) (*FileResult, error) {
	start := time.Now()
	result := &FileResult{Name: filepath.Base(path), Rows: map[model.Kind]int{}}

	err := i.importFile(ctx, path, result)
	result.Err = err
	result.Duration = time.Since(start)

	return result, err
}

func (i *Importer) importFile(ctx context.Context, path string, result *FileResult) error {
	data, err := afero.ReadFile(i.fs, path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	doc, err := document.Parse(data, i.conf.DataField)
	if err != nil {
		return err
	}

	records, err := i.extractor.Extract(doc)
	if err != nil {
		return err
	}

	err = i.store.Transaction(ctx, func(tx repository.Store) error {
		return load(ctx, tx, records)
	})
	if err != nil {
		return err
	}

	for _, kind := range model.LoadOrder {
		result.Rows[kind] = records.Count(kind)
	}

	return nil
}

// load inserts the records kind by kind in model.LoadOrder.
func load(ctx context.Context, store repository.Store, records *extract.Records) error {
	for _, kind := range model.LoadOrder {
		var err error

		switch kind {
		case model.KindCategory:
			err = store.InsertCategories(ctx, records.Categories)
		case model.KindStyle:
			err = store.InsertStyles(ctx, records.Styles)
		case model.KindGlassware:
			err = store.InsertGlassware(ctx, records.Glassware)
		case model.KindAvailability:
			err = store.InsertAvailability(ctx, records.Availability)
		case model.KindBeer:
			err = store.InsertBeers(ctx, records.Beers)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (i *Importer) listFiles() ([]string, error) {
	entries, err := afero.ReadDir(i.fs, i.conf.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", i.conf.Dir, err)
	}

	files := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), i.conf.Extension) {
			continue
		}

		files = append(files, entry.Name())
	}

	return files, nil
}
