// Package server exposes a completed run over HTTP. The engine computes
// the result once; this API serves slices of it so dashboards and
// spreadsheet pulls do not have to re-run the model.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contact-navigator/logging"
	"contact-navigator/metrics"
	"contact-navigator/models"
)

// Server holds the dependencies of the results API.
type Server struct {
	gin    *gin.Engine
	log    logging.Logger
	addr   string
	result *models.RunResult
}

// Config is the dependency bag passed to New.
type Config struct {
	Addr   string
	Mode   string
	Result *models.RunResult
}

// New builds the results API around an already computed run.
func New(log logging.Logger, cfg Config) (*Server, error) {
	mode := cfg.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	srv := &Server{
		gin:    engine,
		log:    logging.OrNop(log),
		addr:   cfg.Addr,
		result: cfg.Result,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv *Server) validate() error {
	if srv.addr == "" {
		return errors.New("listen address is required")
	}
	if srv.result == nil {
		return errors.New("run result is required")
	}
	return nil
}

func (srv *Server) mapHandlers() {
	srv.gin.GET("/health", srv.health)
	srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := srv.gin.Group("/api/v1")
	api.GET("/run", srv.run)
	api.GET("/pools", srv.pools)
	api.GET("/audit", srv.audit)
	api.GET("/roles", srv.roles)
	api.GET("/financials", srv.financials)
	api.GET("/diagnostic", srv.diagnostic)
	api.GET("/risk", srv.risk)
	api.GET("/workforce", srv.workforce)
	api.GET("/scenarios", srv.scenarios)
	api.GET("/sensitivity", srv.sensitivity)
}

// Run blocks serving the API until the listener fails.
func (srv *Server) Run() error {
	return srv.gin.Run(srv.addr)
}

// Handler exposes the route tree for tests.
func (srv *Server) Handler() http.Handler {
	return srv.gin
}

func (srv *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"run_id":   srv.result.RunID,
		"scenario": srv.result.Scenario,
	})
}

func (srv *Server) run(c *gin.Context) {
	c.JSON(http.StatusOK, srv.result)
}

func (srv *Server) pools(c *gin.Context) {
	c.JSON(http.StatusOK, srv.result.Pools)
}

func (srv *Server) audit(c *gin.Context) {
	c.JSON(http.StatusOK, srv.result.Audit)
}

func (srv *Server) roles(c *gin.Context) {
	c.JSON(http.StatusOK, srv.result.RoleImpacts)
}

func (srv *Server) financials(c *gin.Context) {
	c.JSON(http.StatusOK, srv.result.Financials)
}

func (srv *Server) diagnostic(c *gin.Context) {
	if srv.result.Diagnostic == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "diagnostic not computed for this run"})
		return
	}
	c.JSON(http.StatusOK, srv.result.Diagnostic)
}

func (srv *Server) risk(c *gin.Context) {
	if srv.result.Risk == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "risk assessment not computed for this run"})
		return
	}
	c.JSON(http.StatusOK, srv.result.Risk)
}

func (srv *Server) workforce(c *gin.Context) {
	if srv.result.Workforce == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "workforce plan not computed for this run"})
		return
	}
	c.JSON(http.StatusOK, srv.result.Workforce)
}

func (srv *Server) scenarios(c *gin.Context) {
	c.JSON(http.StatusOK, srv.result.Scenarios)
}

func (srv *Server) sensitivity(c *gin.Context) {
	c.JSON(http.StatusOK, srv.result.Sensitivity)
}
