package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arrognz/babycheck/internal/core/event"
	"github.com/Arrognz/babycheck/internal/core/stats"
	"github.com/Arrognz/babycheck/internal/tracker"
	"github.com/Arrognz/babycheck/internal/util"
)

// Server exposes the tracker over HTTP for the household's phones and
// wall displays.
type Server struct {
	tracker *tracker.Tracker
	router  *gin.Engine
}

func New(tr *tracker.Tracker, debug bool) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{tracker: tr, router: gin.New()}
	s.router.Use(gin.Recovery())
	if debug {
		s.router.Use(cors())
	}
	s.routes()
	return s
}

// Run blocks serving on addr.
func (s *Server) Run(addr string) error {
	util.LogInfof("listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.GET("/api/ping", s.ping)

	api := s.router.Group("/api")
	{
		api.POST("/search", s.search)
		api.POST("/stats", s.stats)
		api.GET("/state", s.state)
		api.GET("/day/:date", s.day)
		api.POST("/add", s.add)
		api.POST("/remote/:action", s.remote)
		api.DELETE("/event", s.deleteEvent)
		api.PUT("/event/update", s.updateEvent)
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (s *Server) search(c *gin.Context) {
	body := struct {
		Start int64 `json:"start"`
		Stop  int64 `json:"stop"`
	}{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	events, err := s.tracker.EventsBetween(c.Request.Context(), body.Start, body.Stop)
	if err != nil {
		util.LogErrorf("search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search"})
		return
	}
	if events == nil {
		events = []event.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) stats(c *gin.Context) {
	body := struct {
		Period string `json:"period"`
	}{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	period, err := stats.ParsePeriod(body.Period)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := s.tracker.StatsForPeriod(c.Request.Context(), period)
	if err != nil {
		util.LogErrorf("stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate"})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) state(c *gin.Context) {
	snap, err := s.tracker.CurrentState(c.Request.Context())
	if err != nil {
		util.LogErrorf("state failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to derive state"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) day(c *gin.Context) {
	dayKey := c.Param("date")
	items, err := s.tracker.Day(c.Request.Context(), dayKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": dayKey, "items": items})
}

func (s *Server) add(c *gin.Context) {
	body := struct {
		Action    string `json:"action"`
		Timestamp int64  `json:"timestamp"`
	}{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	e, err := s.tracker.Add(c.Request.Context(), event.Kind(body.Action), body.Timestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": e, "ok": true})
}

// remote is the one-tap endpoint for physical buttons: the kind comes
// from the path, the timestamp is now.
func (s *Server) remote(c *gin.Context) {
	kind := event.Kind(c.Param("action"))
	e, err := s.tracker.Add(c.Request.Context(), kind, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": kind, "event": e, "ok": true})
}

func (s *Server) deleteEvent(c *gin.Context) {
	body := struct {
		Timestamp int64 `json:"timestamp"`
	}{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	n, err := s.tracker.Delete(c.Request.Context(), body.Timestamp)
	if err != nil {
		util.LogErrorf("delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n, "ok": n > 0})
}

func (s *Server) updateEvent(c *gin.Context) {
	body := struct {
		Timestamp int64  `json:"timestamp"`
		Action    string `json:"action"`
	}{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	n, err := s.tracker.Retype(c.Request.Context(), body.Timestamp, event.Kind(body.Action))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n, "ok": n > 0})
}
