// Package validation wraps go-playground/validator for request bodies and
// adds the domain checks that struct tags cannot express.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var panRegex = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// Struct validates a request struct against its validate tags and returns a
// single human-readable message for the first failing field.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid %s: failed %s validation", fieldName(fe.Field()), fe.Tag())
	}
	return err
}

func fieldName(f string) string {
	if f == "" {
		return "field"
	}
	return strings.ToLower(f[:1]) + f[1:]
}

// PAN reports whether a PAN identifier has the standard AAAAA9999A shape.
// Empty is allowed; the field is optional on most forms.
func PAN(pan string) bool {
	if pan == "" {
		return true
	}
	return panRegex.MatchString(strings.ToUpper(pan))
}

// Aadhar reports whether an Aadhaar identifier is a 12-digit number.
// Empty is allowed.
func Aadhar(aadhar string) bool {
	if aadhar == "" {
		return true
	}
	if len(aadhar) != 12 {
		return false
	}
	for _, r := range aadhar {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
