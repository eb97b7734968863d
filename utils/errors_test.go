package utils_test

import (
	"errors"
	"net/http"
	"testing"

	"emoguchi/utils"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, "EMO-400", utils.BadParams("x").Code)
	assert.Equal(t, "EMO-401", utils.Unauthorized("x").Code)
	assert.Equal(t, "EMO-403", utils.Forbidden("x").Code)
	assert.Equal(t, "EMO-404", utils.NotFound("x").Code)
	assert.Equal(t, "EMO-409", utils.Conflict("x").Code)
	assert.Equal(t, "EMO-500", utils.Internal("x").Code)
}

func TestErrorString(t *testing.T) {
	err := utils.NotFound("Room not found")
	assert.Equal(t, "EMO-404: Room not found", err.Error())
}

func TestAsAppError(t *testing.T) {
	t.Run("AppError passes through", func(t *testing.T) {
		original := utils.Conflict("Room is full")
		assert.Equal(t, original, utils.AsAppError(original))
	})

	t.Run("Plain error becomes EMO-500", func(t *testing.T) {
		appErr := utils.AsAppError(errors.New("boom"))
		assert.Equal(t, utils.CodeInternal, appErr.Code)
		assert.Equal(t, "boom", appErr.Message)
	})
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, utils.HTTPStatus(utils.CodeBadParams))
	assert.Equal(t, http.StatusUnauthorized, utils.HTTPStatus(utils.CodeUnauthorized))
	assert.Equal(t, http.StatusForbidden, utils.HTTPStatus(utils.CodeForbidden))
	assert.Equal(t, http.StatusNotFound, utils.HTTPStatus(utils.CodeNotFound))
	assert.Equal(t, http.StatusConflict, utils.HTTPStatus(utils.CodeConflict))
	assert.Equal(t, http.StatusInternalServerError, utils.HTTPStatus(utils.CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, utils.HTTPStatus("whatever"))
}
