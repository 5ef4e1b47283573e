package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate valida un request con las reglas declaradas en sus tags.
func Validate(req any) error {
	return validate.Struct(req)
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
