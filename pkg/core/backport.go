// Package core orchestrates the backport pipeline: scan, analyze,
// extract, buffer, merge, write, postprocess. Execution is strictly
// sequential; no two items are analyzed or written concurrently.
package core

import (
	"sort"

	"github.com/segmentio/ksuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/analyzer"
	"github.com/bdsqqq/resource-pack-backporter/pkg/compat"
	"github.com/bdsqqq/resource-pack-backporter/pkg/errors"
	"github.com/bdsqqq/resource-pack-backporter/pkg/handlers"
	"github.com/bdsqqq/resource-pack-backporter/pkg/model"
	"github.com/bdsqqq/resource-pack-backporter/pkg/scanner"
	"github.com/bdsqqq/resource-pack-backporter/pkg/writers"
)

// Backporter converts a conditional-model resource pack into the flat
// target-format artifacts of the legacy rendering pipeline.
type Backporter struct {
	srcFs, dstFs afero.Fs
	inputDir     string
	outputDir    string
	clear        bool

	l        *zap.Logger
	handlers *handlers.Registry
	writers  *writers.Registry
	mergers  []Merger
}

// Stats summarizes one run.
type Stats struct {
	Items           int
	SkippedItems    int
	Requests        int
	Artifacts       int
	FailedRequests  int
	BytesWritten    int64
	ModelsRepaired  int
	TemplatesFixed  int
	InvalidTemplate int
}

// New creates a backporter for one input/output directory pair.
func New(inputDir, outputDir string, opts ...Option) *Backporter {
	b := &Backporter{
		inputDir:  inputDir,
		outputDir: outputDir,
		clear:     true,
		l:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.srcFs == nil {
		b.srcFs = afero.NewOsFs()
	}
	if b.dstFs == nil {
		b.dstFs = b.srcFs
	}
	if b.handlers == nil {
		b.handlers = handlers.NewRegistry(b.l)
	}
	if b.writers == nil {
		b.writers = writers.NewRegistry(b.srcFs, b.dstFs, b.outputDir, b.l)
	}
	if b.mergers == nil {
		b.mergers = []Merger{NewOverrideMerger()}
	}
	return b
}

// Run executes the full pipeline. A fatal error aborts the remainder of
// the run with no partial-output guarantee.
func (b *Backporter) Run() (*Stats, error) {
	l := b.l.With(zap.String("run_id", ksuid.New().String()))
	stats := &Stats{}

	if b.clear {
		if err := b.clearOutput(l); err != nil {
			return stats, err
		}
	}

	n, err := b.copyPackMetadata(l)
	if err != nil {
		return stats, err
	}
	stats.BytesWritten += n

	structure, err := scanner.New(b.srcFs, l).Scan(b.inputDir)
	if err != nil {
		return stats, err
	}

	fm := NewFileManager(l, b.mergers...)
	if err := b.processItems(l, structure, fm, stats); err != nil {
		return stats, err
	}
	fm.Add(b.assetCopyRequests(structure)...)
	stats.Requests = fm.Pending()

	resolved, err := fm.Resolve()
	if err != nil {
		return stats, err
	}

	if err := b.writeAll(l, resolved, stats); err != nil {
		return stats, err
	}

	report, err := compat.New(b.dstFs, l).Process(b.outputDir)
	if err != nil {
		return stats, err
	}
	stats.ModelsRepaired = report.Repaired
	stats.TemplatesFixed = report.TemplatesFixed
	stats.InvalidTemplate = report.TemplatesInvalid

	return stats, nil
}

// processItems analyzes every item descriptor and buffers handler
// contributions. Item order is sorted so runs are deterministic.
func (b *Backporter) processItems(l *zap.Logger, structure *model.PackStructure, fm *FileManager, stats *Stats) error {
	itemFiles := append([]string(nil), structure.ItemFiles...)
	sort.Strings(itemFiles)

	an := analyzer.New(l)
	for _, itemPath := range itemFiles {
		data, err := afero.ReadFile(b.srcFs, itemPath)
		if err != nil {
			return err
		}
		itemID, err := model.ItemIDFromPath(itemPath)
		if err != nil {
			l.Warn("item path not understood, skipping", zap.String("path", itemPath), zap.Error(err))
			stats.SkippedItems++
			continue
		}
		descriptor, err := model.ParseItemDescriptor(data)
		if err != nil {
			// Structural mismatch on one item never aborts the run.
			l.Warn("item descriptor not understood, skipping",
				zap.String("item", itemID), zap.Error(err))
			stats.SkippedItems++
			continue
		}
		analysis, err := an.Analyze(itemID, descriptor.Model)
		if err != nil {
			l.Warn("item analysis failed, skipping", zap.String("item", itemID), zap.Error(err))
			stats.SkippedItems++
			continue
		}
		requests, err := b.handlers.Dispatch(&handlers.Item{
			ID:       itemID,
			Path:     itemPath,
			Root:     descriptor.Model,
			Analysis: analysis,
		})
		if err != nil {
			return err
		}
		fm.Add(requests...)
		stats.Items++
	}
	return nil
}

// writeAll serializes every resolved request. Unknown request types and
// malformed copy requests are request-scoped: logged and skipped, the
// run continues. Filesystem failures are fatal.
func (b *Backporter) writeAll(l *zap.Logger, resolved []model.WriteRequest, stats *Stats) error {
	for _, req := range resolved {
		n, err := b.writers.Write(req)
		if err != nil {
			if errors.Is(err, writers.ErrUnknownRequestType) || errors.Is(err, writers.ErrMissingSourcePath) {
				l.Error("write request skipped", zap.String("path", req.Path), zap.Error(err))
				stats.FailedRequests++
				continue
			}
			return err
		}
		stats.Artifacts++
		stats.BytesWritten += n
	}
	return nil
}
