package services

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/adsboard-api/config"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var phonePattern = regexp.MustCompile(`^\+7\(\d{3}\)\d{3}-\d{2}-\d{2}$`)

var (
	errBlank          = validation.NewError("validation_blank", "This field may not be blank.")
	errPasswordLength = validation.NewError("validation_password_length", "Password must be at least 8 characters.")
	errPasswordDigit  = validation.NewError("validation_password_digit", "Password must contain at least one digit.")
	errPasswordLetter = validation.NewError("validation_password_letter", "Password must contain at least one letter.")
	errEmailLocalPart = validation.NewError("validation_email_local_part", "The part of the email before @ must not exceed 64 characters.")
)

// stringValue unwraps string and *string values. A nil pointer reports false.
func stringValue(v interface{}) (string, bool) {
	value, _ := validation.Indirect(v)
	if value == nil {
		return "", false
	}
	s, _ := value.(string)
	return s, true
}

// notBlank rejects values that are empty after trimming. Absent optional
// fields (nil pointers) pass.
var notBlank = validation.By(func(v interface{}) error {
	s, ok := stringValue(v)
	if !ok {
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
})

// passwordPolicy requires a minimum length, a digit and a letter
var passwordPolicy = validation.By(func(v interface{}) error {
	s, ok := stringValue(v)
	if !ok {
		return nil
	}
	if len([]rune(s)) < config.MinPasswordLength {
		return errPasswordLength
	}
	if !strings.ContainsFunc(s, unicode.IsDigit) {
		return errPasswordDigit
	}
	if !strings.ContainsFunc(s, unicode.IsLetter) {
		return errPasswordLetter
	}
	return nil
})

var emailLocalPart = validation.By(func(v interface{}) error {
	s, ok := stringValue(v)
	if !ok {
		return nil
	}
	local, _, found := strings.Cut(s, "@")
	if found && len(local) > config.MaxEmailLocalPartLength {
		return errEmailLocalPart
	}
	return nil
})

var (
	emailRules = []validation.Rule{
		validation.Required,
		validation.Length(1, config.MaxEmailLength),
		emailLocalPart,
		is.EmailFormat,
	}
	passwordRules = []validation.Rule{validation.Required, passwordPolicy}
	nameRules     = []validation.Rule{notBlank, validation.RuneLength(0, config.MaxNameLength)}
	phoneFormat   = validation.Match(phonePattern).Error("Phone must be in the format +7(XXX)XXX-XX-XX.")
	phoneRules    = []validation.Rule{validation.Required, phoneFormat}
)

// trimmed returns the trimmed value of an optional string
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
