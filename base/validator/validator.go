package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	return addressPattern.MatchString(strings.ToLower(address))
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
