// Command server hosts the local web shell: a browser front end can
// trigger pipeline runs and follow the run log line by line.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/aggregate"
	"github.com/baihuihang/delivery-statements/internal/config"
	"github.com/baihuihang/delivery-statements/internal/corpus"
	"github.com/baihuihang/delivery-statements/internal/extractor"
	httpshell "github.com/baihuihang/delivery-statements/internal/interfaces/http"
	"github.com/baihuihang/delivery-statements/internal/orchestrator"
	"github.com/baihuihang/delivery-statements/internal/repository"
	"github.com/baihuihang/delivery-statements/internal/statement"
	"github.com/baihuihang/delivery-statements/internal/util"
	"github.com/baihuihang/delivery-statements/internal/workbook"
	"github.com/baihuihang/delivery-statements/pkg/database"
	"github.com/baihuihang/delivery-statements/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	flag.Parse()

	_ = gotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Tee the run log into a buffer so the front end can poll it.
	logBuffer := &utils.LogBuffer{}
	logger, err := utils.NewTeeLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}, logBuffer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	builder := corpus.NewBuilder(extractor.NewExtractor(logger), logger)
	aggregator := aggregate.NewAggregator(logger)
	writer := workbook.NewWriter(logger)
	renderer := statement.NewRenderer(statement.CompanyInfo{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Fax:     cfg.Company.Fax,
	}, logger)

	var history orchestrator.RunRecorder
	if cfg.Database.Path != "" {
		db, err := database.New(cfg.Database.Path, logger)
		if err != nil {
			logger.Fatal("Failed to open run history store", zap.Error(err))
		}
		defer db.Close()
		history = repository.NewRunRepository(db.DB, logger)
	}

	orch := orchestrator.New(builder, aggregator, writer, renderer, history, logger)
	server := httpshell.NewServer(orch, logBuffer, logger)

	url := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	if cfg.Server.OpenBrowser {
		if err := util.OpenBrowser(url); err != nil {
			logger.Warn("Failed to open browser", zap.String("url", url), zap.Error(err))
		}
	}

	if err := server.Start(cfg.Server.Host, cfg.Server.Port); err != nil {
		logger.Fatal("Web shell exited", zap.Error(err))
	}
}
