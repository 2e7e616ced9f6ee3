package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/extractor"
	"github.com/baihuihang/delivery-statements/internal/models"
)

// Builder discovers every delivery-order spreadsheet under a root
// directory and concatenates their extracted line items into one flat
// corpus.
type Builder struct {
	extractor *extractor.Extractor
	logger    *zap.Logger
}

// NewBuilder creates a corpus Builder.
func NewBuilder(ex *extractor.Extractor, logger *zap.Logger) *Builder {
	return &Builder{extractor: ex, logger: logger}
}

// Result is one corpus build: the flat line items plus the number of
// source files discovered (including files that yielded no records).
type Result struct {
	Items []models.LineItem
	Files int
}

// Build walks rootDir, extracts every supported spreadsheet and returns
// the combined corpus. A failure in one source file is logged and
// contributes zero records; only a failure to walk rootDir itself is
// returned as an error.
func (b *Builder) Build(rootDir string) (*Result, error) {
	files, err := b.discover(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan source directory: %w", err)
	}

	b.logger.Info("Discovered source spreadsheets",
		zap.String("source_dir", rootDir),
		zap.Int("files", len(files)))

	var corpus []models.LineItem
	for _, file := range files {
		items, err := b.extractor.ExtractFile(file)
		if err != nil {
			b.logger.Error("Failed to extract source file, skipping",
				zap.String("file", file),
				zap.Error(err))
			continue
		}
		b.logger.Info("Processed source file",
			zap.String("file", filepath.Base(file)),
			zap.Int("records", len(items)))
		corpus = append(corpus, items...)
	}

	b.logger.Info("Corpus built", zap.Int("records", len(corpus)))
	return &Result{Items: corpus, Files: len(files)}, nil
}

// discover returns every .xls/.xlsx file under rootDir, matched
// case-insensitively. Office lock files (~$...) are ignored.
func (b *Builder) discover(rootDir string) ([]string, error) {
	var files []string
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		name := filepath.Base(path)
		if strings.HasPrefix(name, "~$") {
			return nil
		}
		if extractor.SupportedExtension(filepath.Ext(name)) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
