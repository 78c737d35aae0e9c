package validator

import (
	"fmt"
	"net/http"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// EchoValidatorはecho.Validatorの実装。
// Bind後のc.Validate(req)でstructタグ検証を走らせる。
type EchoValidator struct {
	v *validatorv10.Validate
}

func New() *EchoValidator {
	return &EchoValidator{v: validatorv10.New()}
}

func (e *EchoValidator) Validate(i interface{}) error {
	if err := e.v.Struct(i); err != nil {
		ve, ok := err.(validatorv10.ValidationErrors)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "cuerpo de la petición inválido")
		}

		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, fieldMessage(fe))
		}
		return echo.NewHTTPError(http.StatusBadRequest, strings.Join(fields, "; "))
	}
	return nil
}

func fieldMessage(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", fe.Field())
	case "email":
		return fmt.Sprintf("%s no es un correo válido", fe.Field())
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s no puede superar %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s debe ser al menos %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s es inválido", fe.Field())
	}
}
