// Package server runs a local preview of the generated map with a small JSON API
package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachdehooge/loop-map/internal/app"
	"github.com/Zachdehooge/loop-map/internal/freeway"
	"github.com/Zachdehooge/loop-map/internal/layers"
	"github.com/Zachdehooge/loop-map/internal/popup"
)

// Server serves the generated page and session state
type Server struct {
	session  *app.Session
	pagePath string
}

// New returns a server over s that serves pagePath at /
func New(s *app.Session, pagePath string) *Server {
	return &Server{session: s, pagePath: pagePath}
}

// Router builds the gin engine
func (srv *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) { c.File(srv.pagePath) })
	r.GET("/health", srv.health)

	api := r.Group("/api")
	{
		api.GET("/legend", srv.legend)
		api.GET("/layers", srv.layerState)
		api.PUT("/layers/:name", srv.setLayer)
		api.GET("/classify", srv.classify)
		api.GET("/exits", srv.exits)
		api.GET("/popup/exit/:num", srv.exitPopup)
		api.GET("/popup/incident", srv.incidentPopup)
	}
	return r
}

// Run blocks serving on addr
func (srv *Server) Run(addr string) error {
	hs := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return hs.ListenAndServe()
}

func (srv *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"junctions": len(srv.session.Data.Junctions),
		"links":     len(srv.session.Data.Links),
		"roads":     len(srv.session.Data.Roads),
	})
}

func (srv *Server) legend(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"legend": srv.session.Legend()})
}

func (srv *Server) layerState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"layers": srv.session.Visibility()})
}

type setLayerRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

func (srv *Server) setLayer(c *gin.Context) {
	var req setLayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"visible\": true|false}"})
		return
	}

	legend, err := srv.session.Toggle(layers.Layer(c.Param("name")), *req.Visible)
	if errors.Is(err, layers.ErrUnknownLayer) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"legend": legend})
}

func (srv *Server) classify(c *gin.Context) {
	var coord freeway.Coordinate
	if c.Query("lon") != "" || c.Query("lat") != "" {
		lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
		lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
		if lonErr != nil || latErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lon and lat must both be numbers"})
			return
		}
		coord = freeway.Coordinate{lon, lat}
	}

	ref := c.Query("ref")
	c.JSON(http.StatusOK, gin.H{
		"ref":     ref,
		"coords":  coord,
		"highway": freeway.Classify(ref, coord),
	})
}

func (srv *Server) exits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"exits": freeway.Exits()})
}

func (srv *Server) exitPopup(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("num"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exit number must be an integer"})
		return
	}
	exit, ok := freeway.ExitByNumber(n)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such exit"})
		return
	}
	c.JSON(http.StatusOK, srv.session.Select(popup.ExitSelection{Exit: exit}))
}

func (srv *Server) incidentPopup(c *gin.Context) {
	c.JSON(http.StatusOK, srv.session.IncidentPopup())
}
