package models

// RoleAdmin is the single privileged role every account holds.
const RoleAdmin = "admin"

// User represents a practitioner account. Password holds a bcrypt hash and
// is never returned to clients.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"password,omitempty"`
	Role        string `json:"role"`
	FullName    string `json:"fullName,omitempty"`
	DNI         string `json:"dni,omitempty"`
	Address     string `json:"address,omitempty"`
	Photo       string `json:"photo,omitempty"`
	Colegiatura string `json:"colegiatura,omitempty"`
}

func (User) Collection() string {
	return "users"
}

// Session is the persisted "currently logged in identity" marker kept in the
// sidecar settings store, outside the record collections. It is read at
// startup to decide initial routing and cleared on logout.
type Session struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	LoginAt  string `json:"loginAt"`
}

// ClinicConfig is the display configuration consumed by presentation only.
type ClinicConfig struct {
	ClinicName     string `json:"clinicName"`
	ClinicSubtitle string `json:"clinicSubtitle"`
	ClinicAddress  string `json:"clinicAddress"`
	ClinicPhone    string `json:"clinicPhone"`
}
