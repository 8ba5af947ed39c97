package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sandevgo/lifeos/internal/core"
)

func (s *Server) handleStats(c echo.Context) error {
	day, err := s.stats.Dashboard(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		if errors.Is(err, core.ErrBadInput) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, day)
}

func (s *Server) handleSettingsStats(c echo.Context) error {
	totals, err := s.stats.AllTime(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, totals)
}

func (s *Server) handleReset(c echo.Context) error {
	if err := s.stats.Reset(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
