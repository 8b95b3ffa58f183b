// Package httpapi exposes the orchestrator over HTTP: POST /runs to submit a
// run, GET /status to poll it, GET /metrics for prometheus scraping.
// Grounded on noah-isme-sma-adp-api's gin engine setup (cmd/api-gateway/main.go)
// and its handler/response-envelope split, simplified to the three endpoints
// the spec names.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/russross/classroom-scheduler/internal/domain"
	"github.com/russross/classroom-scheduler/internal/metrics"
	"github.com/russross/classroom-scheduler/internal/orchestrator"
)

// envelope mirrors the pack's {data, error} response shape.
type envelope struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Server wires an *orchestrator.Orchestrator into a gin engine.
type Server struct {
	orc      *orchestrator.Orchestrator
	metrics  *metrics.Metrics
	validate *validator.Validate
	engine   *gin.Engine
}

// New builds the gin engine and registers routes.
func New(orc *orchestrator.Orchestrator, m *metrics.Metrics) *Server {
	s := &Server{
		orc:      orc,
		metrics:  m,
		validate: validator.New(),
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/runs", s.submitRun)
	r.GET("/status", s.status)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	s.engine = r
	return s
}

// Handler returns the underlying http.Handler, for use with http.Server or
// httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// submitRun validates the request body against RunConfig's validator tags
// and hands it to the orchestrator. A run already in progress yields 409; a
// validation failure yields 400.
func (s *Server) submitRun(c *gin.Context) {
	var cfg orchestrator.RunConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Error: err.Error()})
		return
	}
	if err := s.validate.Struct(cfg); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Error: err.Error()})
		return
	}

	runID, err := s.orc.Submit(cfg)
	if err != nil {
		c.JSON(statusFor(err), envelope{Error: err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, envelope{Data: gin.H{"runId": runID}})
}

// status reports whether a run is in progress and the last completed result.
func (s *Server) status(c *gin.Context) {
	c.JSON(http.StatusOK, envelope{Data: s.orc.Status()})
}

// statusFor maps orchestrator sentinel errors onto the exit-code/HTTP-status
// scheme in §7: invalid input is a client error, an already-running
// conflict is 409, everything else is an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAlreadyRunning):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
