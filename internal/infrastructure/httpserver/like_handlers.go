package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nightcap/bar-directory-api/internal/core/domain/drink"
)

// toggleLike serves POST /likes. The session may come from the body or the
// X-Session-ID header.
func (s *Server) toggleLike(c echo.Context) error {
	var req drink.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if req.SessionID == "" {
		req.SessionID = c.Request().Header.Get("X-Session-ID")
	}
	if req.DrinkID == uuid.Nil || req.SessionID == "" {
		return errorJSON(c, http.StatusBadRequest, "drink_id and session_id are required")
	}

	status, err := s.likeSvc.ToggleLike(c.Request().Context(), req.DrinkID, req.SessionID)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to toggle like")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"drink_id":   status.DrinkID,
		"session_id": status.SessionID,
		"liked":      status.Liked,
		"count":      status.Count,
	})
}

// getLikes serves GET /likes for either a drink's count (?drink_id=) or a
// session's liked drinks (?session_id=).
func (s *Server) getLikes(c echo.Context) error {
	if d := c.QueryParam("drink_id"); d != "" {
		drinkID, err := uuid.Parse(d)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid drink_id")
		}
		count, err := s.likeSvc.GetDrinkLikes(c.Request().Context(), drinkID)
		if err != nil {
			return errorJSON(c, http.StatusInternalServerError, "failed to load likes")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":  true,
			"drink_id": drinkID,
			"count":    count,
		})
	}

	if sessionID := c.QueryParam("session_id"); sessionID != "" {
		drinkIDs, err := s.likeSvc.GetSessionLikes(c.Request().Context(), sessionID)
		if err != nil {
			return errorJSON(c, http.StatusInternalServerError, "failed to load likes")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"session_id": sessionID,
			"drink_ids":  drinkIDs,
		})
	}

	return errorJSON(c, http.StatusBadRequest, "drink_id or session_id is required")
}
