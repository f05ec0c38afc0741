package database

// SchemaVersion is stamped into the database file via PRAGMA user_version.
// Opening a file with an older version runs the upgrade in Init.
const SchemaVersion = 4

// Collection names of the fixed record stores. Every record in a collection
// is keyed by its own "id" field.
const (
	CollectionUsers             = "users"
	CollectionPatients          = "patients"
	CollectionTreatments        = "treatments"
	CollectionPatientTreatments = "patient_treatments"
	CollectionAppointments      = "appointments"
	CollectionPayments          = "payments"
	CollectionRadiographs       = "radiographs"
	CollectionConsents          = "consents"
	CollectionOdontograms       = "odontograms"
)

var collections = []string{
	CollectionUsers,
	CollectionPatients,
	CollectionTreatments,
	CollectionPatientTreatments,
	CollectionAppointments,
	CollectionPayments,
	CollectionRadiographs,
	CollectionConsents,
	CollectionOdontograms,
}

// Collections returns the schema's collection names in their fixed order.
func Collections() []string {
	out := make([]string, len(collections))
	copy(out, collections)
	return out
}

// IsCollection reports whether name is a known collection. Unknown names are
// rejected by the store and silently skipped by the backup importer.
func IsCollection(name string) bool {
	for _, c := range collections {
		if c == name {
			return true
		}
	}
	return false
}
