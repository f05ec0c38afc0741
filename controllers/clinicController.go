package controllers

import (
	"KuskoDento/handlers"

	"github.com/gin-gonic/gin"
)

func SetupClinicRoutes(router *gin.Engine, patientHandler *handlers.PatientHandler, treatmentHandler *handlers.TreatmentHandler, patientTreatmentHandler *handlers.PatientTreatmentHandler, appointmentHandler *handlers.AppointmentHandler, paymentHandler *handlers.PaymentHandler, odontogramHandler *handlers.OdontogramHandler, attachmentHandler *handlers.AttachmentHandler, backupHandler *handlers.BackupHandler, settingsHandler *handlers.SettingsHandler) {
	// Define the routes directly on the router
	router.POST("/patients", patientHandler.CreatePatient)
	router.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	router.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
	router.DELETE("/patients/:patient_id", patientHandler.DeletePatient)
	router.GET("/patients", patientHandler.GetAllPatients)

	router.POST("/treatments", treatmentHandler.CreateTreatment)
	router.GET("/treatments/:treatment_id", treatmentHandler.GetTreatmentByID)
	router.PUT("/treatments/:treatment_id", treatmentHandler.UpdateTreatment)
	router.DELETE("/treatments/:treatment_id", treatmentHandler.DeleteTreatment)
	router.GET("/treatments", treatmentHandler.GetAllTreatments)

	router.POST("/patient_treatments", patientTreatmentHandler.CreatePatientTreatment)
	router.GET("/patient_treatments/:record_id", patientTreatmentHandler.GetPatientTreatmentByID)
	router.PUT("/patient_treatments/:record_id", patientTreatmentHandler.UpdatePatientTreatment)
	router.DELETE("/patient_treatments/:record_id", patientTreatmentHandler.DeletePatientTreatment)
	router.GET("/patient_treatments", patientTreatmentHandler.GetAllPatientTreatments)

	router.POST("/appointments", appointmentHandler.CreateAppointment)
	router.GET("/appointments", appointmentHandler.GetAllAppointments)
	router.GET("/appointments/:appointment_id", appointmentHandler.GetAppointmentByID)
	router.PATCH("/appointments/:appointment_id/status", appointmentHandler.UpdateAppointmentStatus)
	router.DELETE("/appointments/:appointment_id", appointmentHandler.DeleteAppointment)

	router.GET("/payments", paymentHandler.GetAllPayments)
	router.GET("/payments/summary", paymentHandler.GetPaymentSummary)
	router.GET("/payments/:payment_id", paymentHandler.GetPaymentByID)
	router.POST("/payments/:payment_id/amortize", paymentHandler.AmortizePayment)
	router.DELETE("/payments/:payment_id", paymentHandler.DeletePayment)

	router.POST("/patients/:patient_id/odontograms", odontogramHandler.SaveOdontogram)
	router.GET("/patients/:patient_id/odontograms/current", odontogramHandler.GetCurrentOdontogram)
	router.GET("/patients/:patient_id/odontograms", odontogramHandler.GetOdontogramHistory)
	router.GET("/patients/:patient_id/odontograms/summary", odontogramHandler.GetOdontogramSummary)

	router.POST("/patients/:patient_id/radiographs", attachmentHandler.UploadRadiograph)
	router.GET("/patients/:patient_id/radiographs", attachmentHandler.GetRadiographsByPatient)
	router.GET("/radiographs/:radiograph_id", attachmentHandler.DownloadRadiograph)
	router.DELETE("/radiographs/:radiograph_id", attachmentHandler.DeleteRadiograph)

	router.POST("/patients/:patient_id/consents", attachmentHandler.UploadConsent)
	router.GET("/patients/:patient_id/consents", attachmentHandler.GetConsentsByPatient)
	router.GET("/consents/:consent_id", attachmentHandler.DownloadConsent)
	router.DELETE("/consents/:consent_id", attachmentHandler.DeleteConsent)

	router.GET("/backup/export", backupHandler.ExportBackup)
	router.POST("/backup/import", backupHandler.ImportBackup)

	router.GET("/settings/clinic", settingsHandler.GetClinicConfig)
	router.PUT("/settings/clinic", settingsHandler.SaveClinicConfig)
}
