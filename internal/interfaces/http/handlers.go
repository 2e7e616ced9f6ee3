package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/baihuihang/delivery-statements/internal/orchestrator"
	"github.com/baihuihang/delivery-statements/pkg/utils"
)

// runState is the lifecycle of the single background run.
type runState string

const (
	stateIdle    runState = "idle"
	stateRunning runState = "running"
	stateDone    runState = "done"
	stateFailed  runState = "failed"
)

// runHandler owns the one-at-a-time pipeline worker. The worker
// goroutine has exclusive ownership of the corpus for the duration of
// a run; the handler only guards the small status snapshot.
type runHandler struct {
	orch   *orchestrator.Orchestrator
	logs   *utils.LogBuffer
	logger *zap.Logger

	mu         sync.Mutex
	state      runState
	lastReport *orchestrator.Report
	lastError  string
}

func newRunHandler(orch *orchestrator.Orchestrator, logs *utils.LogBuffer, logger *zap.Logger) *runHandler {
	return &runHandler{
		orch:   orch,
		logs:   logs,
		logger: logger,
		state:  stateIdle,
	}
}

type startRunRequest struct {
	SourceDir string `json:"source_dir" binding:"required"`
	OutputDir string `json:"output_dir" binding:"required"`
}

// startRun launches the pipeline on a worker goroutine. A second run
// while one is in flight is rejected.
func (h *runHandler) startRun(c *gin.Context) {
	var req startRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.mu.Lock()
	if h.state == stateRunning {
		h.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}
	h.state = stateRunning
	h.lastReport = nil
	h.lastError = ""
	h.mu.Unlock()

	go h.execute(req.SourceDir, req.OutputDir)

	c.JSON(http.StatusAccepted, gin.H{"status": string(stateRunning)})
}

func (h *runHandler) execute(sourceDir, outputDir string) {
	report, err := h.orch.Run(context.Background(), sourceDir, outputDir)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.state = stateFailed
		h.lastError = err.Error()
		h.logger.Error("Run failed", zap.Error(err))
		return
	}
	h.state = stateDone
	h.lastReport = report
}

// latestRun reports the current worker state and, when finished, the
// generated/skipped counts.
func (h *runHandler) latestRun(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	resp := gin.H{"status": string(h.state)}
	if h.lastReport != nil {
		resp["report"] = h.lastReport
	}
	if h.lastError != "" {
		resp["error"] = h.lastError
	}
	c.JSON(http.StatusOK, resp)
}

// logLines returns buffered log lines from ?offset= onward, plus the
// offset to poll from next.
func (h *runHandler) logLines(c *gin.Context) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	lines := h.logs.Lines(offset)
	c.JSON(http.StatusOK, gin.H{
		"lines":       lines,
		"next_offset": offset + len(lines),
	})
}
