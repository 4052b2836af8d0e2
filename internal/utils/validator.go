// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	addressPattern = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")
	zeroAddress    = "0x0000000000000000000000000000000000000000"
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("chain_address", validateChainAddress)
	validate.RegisterValidation("scan_code", validateScanCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidAddress reports whether addr is a syntactically valid, non-zero
// chain address.
func IsValidAddress(addr string) bool {
	return addressPattern.MatchString(addr) && !strings.EqualFold(addr, zeroAddress)
}

func validateChainAddress(fl validator.FieldLevel) bool {
	return IsValidAddress(fl.Field().String())
}

func validateScanCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()

	// Scan codes are printed on labels; keep them short and printable
	if len(code) < 4 || len(code) > 128 {
		return false
	}

	matched, _ := regexp.MatchString("^[a-zA-Z0-9._:-]+$", code)
	return matched
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "chain_address":
		return e.Field() + " must be a valid non-zero chain address"
	case "scan_code":
		return e.Field() + " must be 4-128 characters of letters, digits, or .-_:"
	default:
		return e.Field() + " is invalid"
	}
}
