package handler

import (
	"errors"
	"strconv"

	"github.com/BarenJ/AplikasiPanti/internal/apperr"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:       fiber.StatusBadRequest,
	apperr.KindNotFound:         fiber.StatusNotFound,
	apperr.KindConflict:         fiber.StatusConflict,
	apperr.KindCapacityExceeded: fiber.StatusConflict,
	apperr.KindDataIntegrity:    fiber.StatusInternalServerError,
	apperr.KindInternal:         fiber.StatusInternalServerError,
	apperr.KindUnauthorized:     fiber.StatusUnauthorized,
	apperr.KindForbidden:        fiber.StatusForbidden,
}

// ErrorHandler dipasang di fiber.Config; handler cukup mengembalikan error.
func ErrorHandler(log *zap.Logger, development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return respondError(c, log, development, err)
	}
}

func respondError(c *fiber.Ctx, log *zap.Logger, development bool, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}
	status, ok := statusByKind[appErr.Kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}

	body := fiber.Map{"error": appErr.Message}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	if status >= fiber.StatusInternalServerError {
		log.Error("request gagal",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("kind", appErr.Kind.String()),
			zap.Error(err),
		)
		if development && appErr.Err != nil {
			body["detail"] = appErr.Err.Error()
		}
	}
	return c.Status(status).JSON(body)
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(name, "ID tidak valid")
	}
	return uint(id), nil
}

func queryUint(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperr.Validation(name, "Field "+name+" harus berupa angka")
	}
	return uint(v), nil
}

func badBody() error {
	return apperr.Validation("", "Format data salah")
}
