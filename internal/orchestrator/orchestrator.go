// Package orchestrator sequences the full merge-and-statement run:
// corpus build, aggregation, merged workbook, per-customer statements.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/aggregate"
	"github.com/baihuihang/delivery-statements/internal/corpus"
	"github.com/baihuihang/delivery-statements/internal/models"
	"github.com/baihuihang/delivery-statements/internal/statement"
	"github.com/baihuihang/delivery-statements/internal/storage"
	"github.com/baihuihang/delivery-statements/internal/workbook"
)

// Report summarizes one completed run.
type Report struct {
	Files      int       `json:"files"`
	Records    int       `json:"records"`
	Generated  int       `json:"generated"`
	Skipped    int       `json:"skipped"`
	SourceDir  string    `json:"source_dir"`
	OutputDir  string    `json:"output_dir"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// RunRecorder persists completed run reports. Implementations may be
// nil-checked away when history is disabled.
type RunRecorder interface {
	RecordRun(ctx context.Context, report *Report) error
}

// Orchestrator wires the pipeline components together.
type Orchestrator struct {
	builder    *corpus.Builder
	aggregator *aggregate.Aggregator
	workbook   *workbook.Writer
	renderer   *statement.Renderer
	history    RunRecorder
	stat       StatFunc
	logger     *zap.Logger
}

// New creates an Orchestrator. history may be nil.
func New(
	builder *corpus.Builder,
	aggregator *aggregate.Aggregator,
	writer *workbook.Writer,
	renderer *statement.Renderer,
	history RunRecorder,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		builder:    builder,
		aggregator: aggregator,
		workbook:   writer,
		renderer:   renderer,
		history:    history,
		stat:       os.Stat,
		logger:     logger,
	}
}

// Run executes the full pipeline for one (sourceDir, outputDir) pair.
// Existing statement files are never regenerated. File-level extraction
// failures are isolated inside the corpus builder; destination failures
// abort the run.
func (o *Orchestrator) Run(ctx context.Context, sourceDir, outputDir string) (*Report, error) {
	report := &Report{
		SourceDir: sourceDir,
		OutputDir: outputDir,
		StartedAt: time.Now(),
	}

	result, err := o.builder.Build(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("corpus build failed: %w", err)
	}
	items := result.Items
	report.Records = len(items)
	report.Files = result.Files
	if len(items) == 0 {
		return nil, ErrNoData
	}

	folders := storage.NewFolderManager(outputDir, o.logger)
	if err := folders.EnsureBaseDir(); err != nil {
		return nil, err
	}

	views := o.aggregator.Aggregate(items)

	mergedPath := filepath.Join(outputDir, workbook.MergedFileName)
	if err := o.workbook.Write(mergedPath, items, views); err != nil {
		return nil, fmt.Errorf("failed to write merged workbook: %w", err)
	}

	generated, skipped, err := o.renderStatements(items, folders)
	if err != nil {
		return nil, err
	}
	report.Generated = generated
	report.Skipped = skipped
	report.FinishedAt = time.Now()

	o.logger.Info("Run complete",
		zap.Int("files", report.Files),
		zap.Int("records", report.Records),
		zap.Int("generated", report.Generated),
		zap.Int("skipped", report.Skipped))

	if o.history != nil {
		if err := o.history.RecordRun(ctx, report); err != nil {
			o.logger.Warn("Failed to record run history", zap.Error(err))
		}
	}
	return report, nil
}

type statementKey struct {
	Customer  string
	YearMonth string
}

// renderStatements groups the corpus by (customer, year-month) and
// renders every statement that does not exist yet. Groups are visited
// in sorted key order so one run always produces the same paths for
// the same groups.
func (o *Orchestrator) renderStatements(items []models.LineItem, folders *storage.FolderManager) (generated, skipped int, err error) {
	groups := make(map[statementKey][]models.LineItem)
	for _, it := range items {
		key := statementKey{Customer: it.Customer, YearMonth: it.YearMonth}
		groups[key] = append(groups[key], it)
	}

	keys := make([]statementKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Customer != keys[j].Customer {
			return keys[i].Customer < keys[j].Customer
		}
		return keys[i].YearMonth < keys[j].YearMonth
	})

	o.logger.Info("Generating statements", zap.Int("groups", len(keys)))

	for _, key := range keys {
		destination := folders.StatementPath(key.Customer, key.YearMonth)

		if Decide(destination, o.stat) == WouldSkip {
			o.logger.Info("Statement exists, skipping",
				zap.String("path", destination))
			skipped++
			continue
		}

		if _, err := folders.EnsureCustomerFolder(key.Customer); err != nil {
			return generated, skipped, err
		}
		label := statement.PeriodLabel(key.YearMonth)
		if err := o.renderer.Render(groups[key], key.Customer, label, destination); err != nil {
			return generated, skipped, fmt.Errorf("failed to render statement for %s %s: %w",
				key.Customer, key.YearMonth, err)
		}
		generated++
	}
	return generated, skipped, nil
}
