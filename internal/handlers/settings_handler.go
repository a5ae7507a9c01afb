package handlers

import (
	"net/http"
	"slices"

	"github.com/anonto42/high-five/backend/internal/models"
	"github.com/anonto42/high-five/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// SettingsHandler handles the component's per-user settings screens
type SettingsHandler struct {
	preferenceRepository repositories.PreferenceRepository
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(prefRepo repositories.PreferenceRepository) *SettingsHandler {
	return &SettingsHandler{preferenceRepository: prefRepo}
}

// RegisterSettingsRoutes registers settings-related routes
func (h *SettingsHandler) RegisterSettingsRoutes(g *echo.Group) {
	g.GET("/settings/notifications", h.GetNotificationSettings)
	g.PUT("/settings/notifications", h.UpdateNotificationSettings)
	g.GET("/settings/example", h.GetExampleSettings)
	g.PUT("/settings/example", h.UpdateExampleSettings)
}

// GetNotificationSettings returns the user's notification opt-in settings.
// Settings with no stored value default to "yes".
func (h *SettingsHandler) GetNotificationSettings(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	stored, err := h.preferenceRepository.GetAllForUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	settings := make(map[string]string, len(models.KnownNotificationPrefs))
	for _, key := range models.KnownNotificationPrefs {
		if value, ok := stored[key]; ok && value != "" {
			settings[key] = value
		} else {
			settings[key] = "yes"
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"settings": settings}})
}

// UpdateNotificationSettings saves the user's notification opt-in settings
func (h *SettingsHandler) UpdateNotificationSettings(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateNotificationSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	for key := range req.Settings {
		if !slices.Contains(models.KnownNotificationPrefs, key) {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown setting: "+key)
		}
	}

	for key, value := range req.Settings {
		if err := h.preferenceRepository.Set(currentUserID, key, value); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}

// GetExampleSettings returns the component settings screen state
func (h *SettingsHandler) GetExampleSettings(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	value, err := h.preferenceRepository.Get(currentUserID, models.PrefOptionOne)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"option_one": value == "1"}})
}

// UpdateExampleSettings saves the component settings screen state
func (h *SettingsHandler) UpdateExampleSettings(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateOptionOneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	value := "0"
	if req.OptionOne {
		value = "1"
	}
	if err := h.preferenceRepository.Set(currentUserID, models.PrefOptionOne, value); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"option_one": req.OptionOne}})
}
