package handlers

import (
	"fmt"

	"KuskoDento/models"
	"KuskoDento/services"

	"github.com/gin-gonic/gin"
)

type OdontogramHandler struct {
	Service *services.OdontogramService
}

func NewOdontogramHandler(service *services.OdontogramService) *OdontogramHandler {
	return &OdontogramHandler{Service: service}
}

// SaveOdontogram stores a new immutable snapshot of the patient's dental
// chart. Earlier snapshots are never modified.
func (h *OdontogramHandler) SaveOdontogram(c *gin.Context) {
	var data struct {
		Teeth      map[string]models.ToothRecord `json:"teeth"`
		Diagnostic string                        `json:"diagnostic"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	snapshot, err := h.Service.Save(c.Request.Context(), c.Param("patient_id"), data.Teeth, data.Diagnostic)
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}
	c.JSON(201, snapshot)
}

// GetCurrentOdontogram returns the most recent snapshot, or 404 when the
// patient has none.
func (h *OdontogramHandler) GetCurrentOdontogram(c *gin.Context) {
	snapshot, err := h.Service.Current(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	if snapshot == nil {
		c.JSON(404, gin.H{"error": "No odontogram found for patient"})
		return
	}
	c.JSON(200, snapshot)
}

// GetOdontogramHistory returns all snapshots, newest first.
func (h *OdontogramHandler) GetOdontogramHistory(c *gin.Context) {
	history, err := h.Service.History(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, history)
}

// GetOdontogramSummary returns per-finding counts for the latest snapshot.
func (h *OdontogramHandler) GetOdontogramSummary(c *gin.Context) {
	snapshot, err := h.Service.Current(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	if snapshot == nil {
		c.JSON(404, gin.H{"error": "No odontogram found for patient"})
		return
	}
	c.JSON(200, services.FindingSummary(*snapshot))
}
