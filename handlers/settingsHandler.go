package handlers

import (
	"KuskoDento/models"
	"KuskoDento/services"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	Service *services.SettingsService
}

func NewSettingsHandler(service *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Service: service}
}

// GetClinicConfig returns the clinic branding, falling back to defaults
// when nothing has been saved yet.
func (h *SettingsHandler) GetClinicConfig(c *gin.Context) {
	config, err := h.Service.GetClinicConfig(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, config)
}

func (h *SettingsHandler) SaveClinicConfig(c *gin.Context) {
	var config models.ClinicConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.SaveClinicConfig(c.Request.Context(), config); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, config)
}
