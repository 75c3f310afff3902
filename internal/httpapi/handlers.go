package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"mova.dev/relay/internal/translation"
)

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type translateURLRequest struct {
	URL        string `json:"url"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

type setEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return success(c, map[string]any{
		"service": "relay",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleLanguages(c echo.Context) error {
	return success(c, map[string]any{
		"languages": translation.LanguageOptions(),
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return failValidation(c, map[string]string{"text": "text is required"})
	}

	result := s.svc.Translate(c.Request().Context(), req.Text, req.SourceLang, req.TargetLang)
	return success(c, result)
}

func (s *Server) handleTranslateURL(c echo.Context) error {
	var req translateURLRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if strings.TrimSpace(req.URL) == "" {
		return failValidation(c, map[string]string{"url": "url is required"})
	}

	text, err := s.fetchText(c.Request().Context(), req.URL)
	if err != nil {
		return fail(c, http.StatusBadGateway, "Could not extract text from URL", map[string]any{
			"url": req.URL,
		})
	}

	result := s.svc.Translate(c.Request().Context(), text, req.SourceLang, req.TargetLang)
	return success(c, map[string]any{
		"url":         req.URL,
		"extracted":   text,
		"translation": result,
	})
}

func (s *Server) handleProviders(c echo.Context) error {
	return success(c, map[string]any{
		"providers": s.svc.ProviderStatus(),
	})
}

func (s *Server) handleResetFailures(c echo.Context) error {
	s.svc.ResetFailures()
	return success(c, map[string]any{
		"providers": s.svc.ProviderStatus(),
	})
}

func (s *Server) handleSetProviderEnabled(c echo.Context) error {
	var req setEnabledRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if req.Enabled == nil {
		return failValidation(c, map[string]string{"enabled": "enabled flag is required"})
	}

	name := c.Param("name")
	if err := s.svc.SetProviderEnabled(name, *req.Enabled); err != nil {
		return fail(c, http.StatusNotFound, err.Error(), nil)
	}
	return success(c, map[string]any{
		"providers": s.svc.ProviderStatus(),
	})
}

func (s *Server) handleLogSnapshot(c echo.Context) error {
	records := s.svc.LogSnapshot()
	return success(c, map[string]any{
		"count":   len(records),
		"records": records,
	})
}

func (s *Server) handleClearLog(c echo.Context) error {
	s.svc.ClearLog()
	return success(c, map[string]any{
		"cleared": true,
	})
}

func (s *Server) handleHistory(c echo.Context) error {
	if s.history == nil {
		return fail(c, http.StatusNotFound, "Translation history is not configured", nil)
	}

	limit := 25
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			return failValidation(c, map[string]string{"limit": "limit must be between 1 and 500"})
		}
		limit = parsed
	}

	rows, err := s.history.ListRecent(c.Request().Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("history listing failed")
		return internalError(c, "Could not load translation history")
	}
	return success(c, map[string]any{
		"count":        len(rows),
		"translations": rows,
	})
}
