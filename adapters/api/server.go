package api

import (
	"log"
	"net/http"
	"strconv"

	"attrilens/app"
	"attrilens/domain/attrition"
	"attrilens/domain/core"
	"attrilens/domain/dataset"

	"github.com/gin-gonic/gin"
)

// Server exposes the dashboard aggregations as a JSON API for chart
// front-ends. It holds no state of its own: every request is answered from
// the immutable dataset through the dashboard service.
type Server struct {
	router *gin.Engine
	svc    *app.DashboardService
}

// NewServer creates the API server and registers its routes.
func NewServer(svc *app.DashboardService) *Server {
	s := &Server{
		router: gin.Default(),
		svc:    svc,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.router.Group("/api/v1")
	v1.GET("/dashboard", s.handleDashboard)
	v1.GET("/overview", s.handleOverview)
	v1.GET("/summary/:key", s.handleSummary)
	v1.GET("/matrix", s.handleMatrix)
	v1.GET("/box", s.handleBox)
	v1.GET("/sunburst", s.handleSunburst)
	v1.GET("/sales", s.handleSales)
	v1.GET("/early-career", s.handleEarlyCareer)
	v1.GET("/search", s.handleSearch)
	v1.GET("/datasets", s.handleDatasets)
	v1.POST("/reload", s.handleReload)
}

// Handler returns the underlying HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	log.Printf("[API] Listening on %s", addr)
	return s.router.Run(addr)
}

// parseFilter builds the row filter from query parameters. Absent
// parameters add no predicates, so a bare request sees the full dataset.
func parseFilter(c *gin.Context) dataset.Filter {
	filter := dataset.NewFilter()

	if departments := c.QueryArray("department"); len(departments) > 0 {
		filter = filter.With(dataset.In(attrition.ColDepartment, departments...))
	}
	if roles := c.QueryArray("jobRole"); len(roles) > 0 {
		filter = filter.With(dataset.In(attrition.ColJobRole, roles...))
	}
	if gender := c.Query("gender"); gender != "" && gender != "All" {
		filter = filter.With(dataset.Equal(attrition.ColGender, gender))
	}

	minAge, errMin := strconv.ParseFloat(c.Query("minAge"), 64)
	maxAge, errMax := strconv.ParseFloat(c.Query("maxAge"), 64)
	if errMin == nil || errMax == nil {
		if errMin != nil {
			minAge = 0
		}
		if errMax != nil {
			maxAge = 200
		}
		filter = filter.With(dataset.Between(attrition.ColAge, minAge, maxAge))
	}
	return filter
}

// respondError maps domain error kinds onto HTTP semantics. An empty result
// is not a failure: the client gets a notice payload it can render.
func respondError(c *gin.Context, err error) {
	switch {
	case core.IsEmptyResult(err):
		c.JSON(http.StatusOK, gin.H{"empty": true, "notice": err.Error()})
	case core.IsDataNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case core.IsSchemaInvalid(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (s *Server) handleDashboard(c *gin.Context) {
	data, err := s.svc.Dashboard(c.Request.Context(), parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleOverview(c *gin.Context) {
	overview, err := s.svc.Overview(c.Request.Context(), parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (s *Server) handleSummary(c *gin.Context) {
	key := c.Param("key")
	summary, err := s.svc.Summary(c.Request.Context(), parseFilter(c), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "groups": summary})
}

func (s *Server) handleMatrix(c *gin.Context) {
	rowKey := c.DefaultQuery("row", attrition.ColJobLevel)
	colKey := c.DefaultQuery("col", attrition.ColJobSatisfaction)
	matrix, err := s.svc.Matrix(c.Request.Context(), parseFilter(c), rowKey, colKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matrix)
}

func (s *Server) handleBox(c *gin.Context) {
	valueColumn := c.DefaultQuery("value", attrition.ColMonthlyIncome)
	byColumn := c.DefaultQuery("by", attrition.ColAttrition)
	boxes, err := s.svc.Box(c.Request.Context(), parseFilter(c), valueColumn, byColumn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": valueColumn, "by": byColumn, "groups": boxes})
}

func (s *Server) handleSunburst(c *gin.Context) {
	counts, err := s.svc.Sunburst(c.Request.Context(), parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

func (s *Server) handleSales(c *gin.Context) {
	data, err := s.svc.SalesDeepDive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleEarlyCareer(c *gin.Context) {
	data, err := s.svc.EarlyCareerDeepDive(c.Request.Context(), parseFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (s *Server) handleSearch(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	result, err := s.svc.Search(c.Request.Context(), parseFilter(c), c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleDatasets(c *gin.Context) {
	entries, err := s.svc.History(c.Request.Context(), 20)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"datasets": entries})
}

func (s *Server) handleReload(c *gin.Context) {
	s.svc.Reload()
	if _, err := s.svc.Dataset(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reloaded": true})
}
