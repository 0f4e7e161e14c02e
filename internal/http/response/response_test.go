package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	JSON(w, r, http.StatusCreated, Message("Registered successfully"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Registered successfully"}`, w.Body.String())
}

func TestInternal(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Internal(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, MsgInternal, body.Error)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Email   string `validate:"required,email"`
		Urgency string `validate:"omitempty,oneof=Low Medium High"`
		Name    string `validate:"required"`
	}

	err := validator.New().Struct(request{Email: "not-an-email", Urgency: "Now"})
	require.Error(t, err)

	got := ValidationError(err.(validator.ValidationErrors))
	assert.Contains(t, got.Error, "field Email must be a valid email")
	assert.Contains(t, got.Error, "field Urgency must be one of: Low Medium High")
	assert.Contains(t, got.Error, "field Name is a required field")
}
