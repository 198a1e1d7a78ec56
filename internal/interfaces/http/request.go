package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
)

var validate = validator.New()

// bindBody parsea el body JSON y aplica las reglas `validate` del DTO.
// Devuelve false si ya respondió con 400.
func bindBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	return true, nil
}

// pathID lee un UUID de la ruta. Devuelve false si ya respondió con 400.
func pathID(c *fiber.Ctx, name string) (string, bool, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: name + " debe ser un UUID"})
	}
	return id, true, nil
}

func validationMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err.Error()
	}
	fields := make([]string, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "datos inválidos (" + strings.Join(fields, ", ") + ")"
}
