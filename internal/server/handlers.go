package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uomtools/sisgate/internal/portal"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type trayRequest struct {
	KeepInTray *bool `json:"keep_in_tray" binding:"required"`
}

// statusFor maps the portal error taxonomy onto HTTP statuses. The
// body always carries the flattened message; the status is a coarse
// hint for the shell.
func statusFor(err error) int {
	switch {
	case errors.Is(err, portal.ErrInvalidCredentials),
		errors.Is(err, portal.ErrNotAuthenticated),
		portal.IsRestoreError(err):
		return http.StatusUnauthorized
	case errors.Is(err, portal.ErrPortalUnreachable),
		errors.Is(err, portal.ErrCASUnreachable),
		errors.Is(err, portal.ErrRequestFailed),
		errors.Is(err, portal.ErrTokenMissing),
		errors.Is(err, portal.ErrInvalidResponse),
		errors.Is(err, portal.ErrNoProfile):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"authenticated": s.manager.Authenticated(),
	})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	info, err := s.manager.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.metrics.LoginFailures.Inc()
		fail(c, err)
		return
	}
	s.metrics.Logins.Inc()
	c.JSON(http.StatusOK, info)
}

func (s *Server) restore(c *gin.Context) {
	info, err := s.manager.Restore(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	s.metrics.SessionsRestored.Inc()
	c.JSON(http.StatusOK, info)
}

func (s *Server) logout(c *gin.Context) {
	s.manager.Logout()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) studentInfo(c *gin.Context) {
	info, err := s.manager.StudentInfo(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) grades(c *gin.Context) {
	grades, err := s.manager.Grades(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, grades)
}

func (s *Server) gradeStats(c *gin.Context) {
	stats, err := s.manager.GradeStats(c.Request.Context(),
		c.Param("courseSyllabusId"), c.Param("examPeriodId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) getKeepInTray(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keep_in_tray": s.settings.KeepInTray()})
}

func (s *Server) setKeepInTray(c *gin.Context) {
	var req trayRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.KeepInTray == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keep_in_tray required"})
		return
	}
	if err := s.settings.SetKeepInTray(*req.KeepInTray); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"keep_in_tray": *req.KeepInTray})
}
