package validators

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to echo's Validator
// interface.
type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
