package handlers

import (
	"fmt"
	"io"

	"KuskoDento/services"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	Service *services.BackupService
}

func NewBackupHandler(service *services.BackupService) *BackupHandler {
	return &BackupHandler{Service: service}
}

// ExportBackup serves the full clinic dataset as a dated JSON download.
func (h *BackupHandler) ExportBackup(c *gin.Context) {
	data, fileName, err := h.Service.Export(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(200, "application/json", data)
}

// ImportBackup replaces all clinic data with a previously exported file.
// The destructive replace only runs with ?confirm=true; a failed import can
// leave cleared collections, so the caller is told to retry from the same
// backup file.
func (h *BackupHandler) ImportBackup(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(400, gin.H{"error": "La importación reemplaza todos los datos existentes; repita la solicitud con confirm=true"})
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "Failed to read request body"})
		return
	}

	if err := h.Service.Import(c.Request.Context(), data); err != nil {
		c.JSON(500, gin.H{
			"error":  fmt.Sprintf("Import failed: %v", err),
			"advice": "Algunos datos pueden haberse perdido; vuelva a importar el mismo archivo de respaldo",
		})
		return
	}
	c.JSON(200, gin.H{"message": "Datos restaurados correctamente"})
}
