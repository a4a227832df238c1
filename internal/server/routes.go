package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/alexisbeaulieu97/progressbar/internal/binding"
	"github.com/alexisbeaulieu97/progressbar/internal/infrastructure/store"
	"github.com/alexisbeaulieu97/progressbar/internal/render"
)

type stateResponse struct {
	State binding.State `json:"state"`
	View  render.View   `json:"view"`
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	r.GET("/widget", s.handleWidget)
	r.GET("/state", s.handleState)
	r.GET("/records/:id", s.handleGetRecord)
	r.PUT("/records/:id", s.handlePutRecord)
	r.POST("/click", s.handleClick)
	r.GET("/ws", s.handleWebSocket)
	return r
}

func (s *Server) requireWidget(c *gin.Context) (Widget, bool) {
	w := s.current()
	if w == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "widget not attached"})
		return nil, false
	}
	return w, true
}

func (s *Server) handleWidget(c *gin.Context) {
	w, ok := s.requireWidget(c)
	if !ok {
		return
	}
	html, err := render.HTML(render.Build(w.State(), w.Config()))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleState(c *gin.Context) {
	w, ok := s.requireWidget(c)
	if !ok {
		return
	}
	st := w.State()
	c.JSON(http.StatusOK, stateResponse{State: st, View: render.Build(st, w.Config())})
}

func (s *Server) handleGetRecord(c *gin.Context) {
	values, ok := s.records.Snapshot(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, values)
}

func (s *Server) handlePutRecord(c *gin.Context) {
	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	id := c.Param("id")
	if err := s.records.Commit(id, values); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	snapshot, _ := s.records.Snapshot(id)
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleClick(c *gin.Context) {
	w, ok := s.requireWidget(c)
	if !ok {
		return
	}
	if !w.Config().OnClick.Enabled() {
		c.JSON(http.StatusConflict, gin.H{"error": "no click action configured"})
		return
	}
	if banner := w.State().ConfigError; banner != "" {
		c.JSON(http.StatusConflict, gin.H{"error": banner})
		return
	}
	w.HandleClick(s.clickContext())
	c.JSON(http.StatusAccepted, gin.H{"status": "dispatched"})
}
