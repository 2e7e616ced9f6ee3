// Command merger runs the delivery-order pipeline once from the
// command line: extract every order under the source directory, write
// the merged workbook, and generate the missing monthly statements.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/aggregate"
	"github.com/baihuihang/delivery-statements/internal/config"
	"github.com/baihuihang/delivery-statements/internal/corpus"
	"github.com/baihuihang/delivery-statements/internal/extractor"
	"github.com/baihuihang/delivery-statements/internal/orchestrator"
	"github.com/baihuihang/delivery-statements/internal/repository"
	"github.com/baihuihang/delivery-statements/internal/statement"
	"github.com/baihuihang/delivery-statements/internal/workbook"
	"github.com/baihuihang/delivery-statements/pkg/database"
	"github.com/baihuihang/delivery-statements/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	sourceDir := flag.String("source", "", "source directory of delivery orders (overrides config)")
	outputDir := flag.String("output", "", "output directory for workbook and statements (overrides config)")
	flag.Parse()

	_ = gotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *sourceDir != "" {
		cfg.App.SourceDir = *sourceDir
	}
	if *outputDir != "" {
		cfg.App.OutputDir = *outputDir
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	orch, cleanup, err := buildOrchestrator(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize pipeline", zap.Error(err))
	}
	defer cleanup()

	report, err := orch.Run(context.Background(), cfg.App.SourceDir, cfg.App.OutputDir)
	if err != nil {
		if errors.Is(err, orchestrator.ErrNoData) {
			fmt.Println("没有找到任何数据")
			return
		}
		logger.Fatal("Run failed", zap.Error(err))
	}

	fmt.Printf("处理完成：%d 个文件，%d 条记录\n", report.Files, report.Records)
	fmt.Printf("新生成 %d 个对账单，已跳过 %d 个\n", report.Generated, report.Skipped)
}

// buildOrchestrator wires the pipeline from configuration. The run
// history store is optional and only opened when a database path is
// configured.
func buildOrchestrator(cfg *config.Config, logger *zap.Logger) (*orchestrator.Orchestrator, func(), error) {
	builder := corpus.NewBuilder(extractor.NewExtractor(logger), logger)
	aggregator := aggregate.NewAggregator(logger)
	writer := workbook.NewWriter(logger)
	renderer := statement.NewRenderer(statement.CompanyInfo{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Fax:     cfg.Company.Fax,
	}, logger)

	cleanup := func() {}
	var history orchestrator.RunRecorder
	if cfg.Database.Path != "" {
		db, err := database.New(cfg.Database.Path, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open run history store: %w", err)
		}
		history = repository.NewRunRepository(db.DB, logger)
		cleanup = func() { db.Close() }
	}

	return orchestrator.New(builder, aggregator, writer, renderer, history, logger), cleanup, nil
}
