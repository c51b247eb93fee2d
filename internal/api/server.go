package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ppiankov/thindex/internal/model"
	"github.com/ppiankov/thindex/internal/pipeline"
	"github.com/ppiankov/thindex/internal/score"
)

// Server exposes the analysis pipeline over HTTP
type Server struct {
	analyzer *pipeline.Analyzer
	batch    *pipeline.BatchProcessor
	config   *model.Config
}

// NewServer creates an API server around an analyzer
func NewServer(analyzer *pipeline.Analyzer, cfg *model.Config) *Server {
	return &Server{
		analyzer: analyzer,
		batch:    pipeline.NewBatchProcessor(analyzer, cfg.Concurrency.BatchWorkers),
		config:   cfg,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleRoot)
	router.GET("/healthz", s.handleHealth)

	v1 := router.Group("/v1")
	{
		v1.POST("/analyze", s.handleAnalyze)
		v1.POST("/batch", s.handleBatch)
	}

	return router
}

// Run serves until the listener fails
func (s *Server) Run() error {
	return s.Router().Run(s.config.Server.Addr)
}

type analyzeRequest struct {
	Text       string    `json:"text" binding:"required"`
	Evidence   string    `json:"evidence"`
	Threshold  *float64  `json:"threshold"`
	MarginBand *float64  `json:"margin_band"`
	Weights    []float64 `json:"weights"` // [contradiction, support, instability, speculative, numeric]
}

type batchRequest struct {
	Texts      []string  `json:"texts" binding:"required"`
	Evidence   string    `json:"evidence"`
	Threshold  *float64  `json:"threshold"`
	MarginBand *float64  `json:"margin_band"`
	Weights    []float64 `json:"weights"`
}

type batchItem struct {
	Text   string           `json:"text"`
	Report *pipeline.Report `json:"report,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "thindex",
		"health":  "/healthz",
		"analyze": "/v1/analyze",
		"batch":   "/v1/batch",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	detector := "disabled"
	if s.config.Detectors.BaseURL != "" {
		detector = s.config.Detectors.BaseURL
	} else if s.config.LLM.Provider != "" {
		detector = s.config.LLM.Provider
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"detector": detector,
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	pipelineReq, err := toPipelineRequest(req.Evidence, req.Threshold, req.MarginBand, req.Weights)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	pipelineReq.Text = req.Text

	assessment, err := s.analyzer.Analyze(c.Request.Context(), pipelineReq)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrEmptyDocument) || errors.Is(err, model.ErrInvalidConfig) {
			status = http.StatusBadRequest
		}
		c.JSON(status, errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, pipeline.BuildReport(assessment))
}

func (s *Server) handleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if len(req.Texts) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "texts must not be empty"})
		return
	}

	base, err := toPipelineRequest(req.Evidence, req.Threshold, req.MarginBand, req.Weights)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	results := s.batch.ProcessTexts(c.Request.Context(), req.Texts, base)

	items := make([]batchItem, len(results))
	for i, r := range results {
		items[i] = batchItem{Text: r.Text, Report: r.Report}
		if r.Err != nil {
			items[i].Error = r.Err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_texts": len(items),
		"results":     items,
	})
}

// toPipelineRequest validates request-level configuration up front so
// bad weights or thresholds are rejected before any scoring work
func toPipelineRequest(evidence string, threshold, marginBand *float64, weights []float64) (pipeline.Request, error) {
	req := pipeline.Request{
		Evidence:   evidence,
		Threshold:  threshold,
		MarginBand: marginBand,
	}

	if len(weights) > 0 {
		w, err := score.WeightsFromSlice(weights)
		if err != nil {
			return pipeline.Request{}, err
		}
		req.Weights = &w
	}

	return req, nil
}
