package handlers

import (
	"fmt"

	"KuskoDento/services"

	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	Service *services.AttachmentService
}

func NewAttachmentHandler(service *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{Service: service}
}

// attachmentUpload is the shared request body for radiographs and signed
// consents. FileBlob arrives as standard base64 in the JSON payload.
type attachmentUpload struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	FileBlob []byte `json:"fileBlob"`
}

func (h *AttachmentHandler) UploadRadiograph(c *gin.Context) {
	var upload attachmentUpload
	if err := c.ShouldBindJSON(&upload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	radiograph, err := h.Service.CreateRadiograph(c.Request.Context(), c.Param("patient_id"), upload.FileName, upload.FileType, upload.FileBlob)
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}
	c.JSON(201, gin.H{"id": radiograph.ID, "fileName": radiograph.FileName, "date": radiograph.Date})
}

func (h *AttachmentHandler) GetRadiographsByPatient(c *gin.Context) {
	radiographs, err := h.Service.RadiographsByPatient(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, radiographs)
}

// DownloadRadiograph serves the stored bytes with the original content type.
func (h *AttachmentHandler) DownloadRadiograph(c *gin.Context) {
	radiograph, err := h.Service.GetRadiograph(c.Request.Context(), c.Param("radiograph_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	if radiograph == nil {
		c.JSON(404, gin.H{"error": "Radiograph not found"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", radiograph.FileName))
	c.Data(200, radiograph.FileType, radiograph.FileBlob)
}

func (h *AttachmentHandler) DeleteRadiograph(c *gin.Context) {
	if err := h.Service.DeleteRadiograph(c.Request.Context(), c.Param("radiograph_id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Radiograph deleted"})
}

func (h *AttachmentHandler) UploadConsent(c *gin.Context) {
	var upload attachmentUpload
	if err := c.ShouldBindJSON(&upload); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	consent, err := h.Service.CreateConsent(c.Request.Context(), c.Param("patient_id"), upload.FileName, upload.FileType, upload.FileBlob)
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Validation failed: %v", err)})
		return
	}
	c.JSON(201, gin.H{"id": consent.ID, "fileName": consent.FileName, "date": consent.Date})
}

func (h *AttachmentHandler) GetConsentsByPatient(c *gin.Context) {
	consents, err := h.Service.ConsentsByPatient(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(200, consents)
}

func (h *AttachmentHandler) DownloadConsent(c *gin.Context) {
	consent, err := h.Service.GetConsent(c.Request.Context(), c.Param("consent_id"))
	if err != nil {
		internalError(c, err)
		return
	}
	if consent == nil {
		c.JSON(404, gin.H{"error": "Consent not found"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", consent.FileName))
	c.Data(200, consent.FileType, consent.FileBlob)
}

func (h *AttachmentHandler) DeleteConsent(c *gin.Context) {
	if err := h.Service.DeleteConsent(c.Request.Context(), c.Param("consent_id")); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Consent deleted"})
}
