package utils

import (
	"errors"
	"log"

	"KuskoDento/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validation errors
var (
	ErrPasswordTooShort = errors.New("password must be at least 4 characters long")
)

// ValidateUserData validates account data using ozzo-validation.
func ValidateUserData(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&user.Role, validation.Required, validation.In(models.RoleAdmin)),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePasswordChange validates a new password before it is hashed.
func ValidatePasswordChange(newPassword string) error {
	err := validation.Validate(newPassword, validation.Required, validation.By(validatePassword))
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// validatePassword checks the password for a minimum length. The practice
// runs on a single device, so no complexity classes are demanded.
func validatePassword(value interface{}) error {
	password, _ := value.(string)
	if len(password) < 4 {
		log.Println("Password too short")
		return ErrPasswordTooShort
	}
	return nil
}
