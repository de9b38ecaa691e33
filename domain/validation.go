package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^(\+88)?(01)[0-9]{9}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)

	if err := v.RegisterValidation("phone", phoneField); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("strongpassword", strongPasswordField); err != nil {
		panic(err)
	}
	return v
}

// fieldName reports fields by their JSON name, falling back to the BSON name
// for fields hidden from JSON.
func fieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		name = strings.SplitN(field.Tag.Get("bson"), ",", 2)[0]
	}
	return name
}

func phoneField(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func strongPasswordField(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsStrongPassword requires at least 8 characters with an upper-case letter,
// a lower-case letter, a digit and a symbol.
func IsStrongPassword(s string) bool {
	hasUpperCase := false
	hasLowerCase := false
	hasDigit := false
	hasSpecial := false

	for _, c := range s {
		switch {
		case unicode.IsDigit(c):
			hasDigit = true
		case unicode.IsUpper(c):
			hasUpperCase = true
		case unicode.IsLower(c):
			hasLowerCase = true
		case !unicode.IsLetter(c):
			hasSpecial = true
		}
	}

	return len([]rune(s)) >= 8 && hasUpperCase && hasLowerCase && hasDigit && hasSpecial
}

// Validate checks the stored-record rules and returns one message per
// violated field. A nil result means the user is valid.
func (user *User) Validate() []string {
	return validationMessages(validate.Struct(user))
}

func (input *RegisterInput) Validate() []string {
	return validationMessages(validate.Struct(input))
}

// Validate checks the present fields only.
func (update *UserUpdate) Validate() []string {
	var messages []string
	if update.Name != nil && *update.Name == "" {
		messages = append(messages, "name is required")
	}
	if update.Phone != nil {
		switch {
		case *update.Phone == "":
			messages = append(messages, "phone is required")
		case !IsValidPhone(*update.Phone):
			messages = append(messages, "Please enter a valid phone number")
		}
	}
	if update.ProfileImage != nil && validate.Var(*update.ProfileImage, "url") != nil {
		messages = append(messages, "profileImage must be a valid URL")
	}
	return messages
}

func validationMessages(err error) []string {
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, message(fe))
	}
	return messages
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please enter a valid email"
	case "phone":
		return "Please enter a valid phone number"
	case "strongpassword":
		return "Password must be at least 8 characters long and include one uppercase letter, one lowercase letter, one number, and one special character"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
