package utils

import (
	"log"

	"KuskoDento/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// validTeeth holds every two-digit FDI tooth number: quadrants 1-4 for the
// permanent dentition, 5-8 for the primary one.
var validTeeth = buildToothSet()

func buildToothSet() map[string]bool {
	set := make(map[string]bool, 52)
	for quadrant := 1; quadrant <= 4; quadrant++ {
		for position := 1; position <= 8; position++ {
			set[toothNumber(quadrant, position)] = true
		}
	}
	for quadrant := 5; quadrant <= 8; quadrant++ {
		for position := 1; position <= 5; position++ {
			set[toothNumber(quadrant, position)] = true
		}
	}
	return set
}

func toothNumber(quadrant, position int) string {
	return string([]byte{byte('0' + quadrant), byte('0' + position)})
}

// IsValidTooth reports whether tooth is a known FDI number.
func IsValidTooth(tooth string) bool {
	return validTeeth[tooth]
}

// ValidatePatientData validates a patient chart before persistence.
func ValidatePatientData(patient models.Patient) error {
	err := validation.ValidateStruct(&patient,
		validation.Field(&patient.DNI, validation.Required, validation.Length(1, 20)),
		validation.Field(&patient.Names, validation.Required),
		validation.Field(&patient.LastNames, validation.Required),
		validation.Field(&patient.Phone, validation.Required),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateTreatmentData validates a catalog treatment.
func ValidateTreatmentData(treatment models.Treatment) error {
	err := validation.ValidateStruct(&treatment,
		validation.Field(&treatment.Name, validation.Required),
		validation.Field(&treatment.Price, validation.Min(0.0)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateAppointmentData validates the scheduling fields of an appointment
// before the conflict check runs.
func ValidateAppointmentData(appointment models.Appointment) error {
	err := validation.ValidateStruct(&appointment,
		validation.Field(&appointment.PatientID, validation.Required),
		validation.Field(&appointment.DoctorID, validation.Required),
		validation.Field(&appointment.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&appointment.Time, validation.Required, validation.Date("15:04")),
		validation.Field(&appointment.Status, validation.Required, validation.In(models.StatusAssigned, models.StatusAttended)),
		validation.Field(&appointment.Cost, validation.Min(0.0)),
		validation.Field(&appointment.PaidAmount, validation.Min(0.0)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateOdontogramData checks every charted tooth against the FDI
// numbering and every whole-tooth state against the known set. Surface tags
// are free-form finding identifiers, so only the tooth keys are constrained.
func ValidateOdontogramData(odontogram models.Odontogram) error {
	if odontogram.PatientID == "" {
		return validation.NewError("validation_required", "patientId cannot be blank")
	}
	for tooth, record := range odontogram.Teeth {
		if !IsValidTooth(tooth) {
			return validation.NewError("validation_tooth", "unknown FDI tooth number: "+tooth)
		}
		switch record.GlobalState {
		case "", models.ToothStateNone, models.ToothStateMissing, models.ToothStateCrown, models.ToothStateBridge:
		default:
			return validation.NewError("validation_tooth_state", "unknown whole-tooth state: "+record.GlobalState)
		}
	}
	return nil
}

// ValidateAttachmentData validates a binary attachment record.
func ValidateAttachmentData(patientID, fileName, fileType string, fileBlob []byte) error {
	err := validation.Errors{
		"patientId": validation.Validate(patientID, validation.Required),
		"fileName":  validation.Validate(fileName, validation.Required),
		"fileType":  validation.Validate(fileType, validation.Required),
		"fileBlob":  validation.Validate(fileBlob, validation.Required),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}
