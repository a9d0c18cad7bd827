package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestSuccessReturnsRawResource(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"name": "Lamp"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Lamp", body(t, rec)["name"])
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestOKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, "the order is deleted!")

	m := body(t, rec)
	assert.Equal(t, true, m["success"])
	assert.Equal(t, "the order is deleted!", m["message"])
}

func TestFailEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusBadRequest, "the order cannot be created!")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m := body(t, rec)
	assert.Equal(t, false, m["success"])
	assert.Equal(t, "the order cannot be created!", m["message"])
}

func TestFailErr(t *testing.T) {
	rec := httptest.NewRecorder()
	FailErr(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "boom", body(t, rec)["error"])
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"name": "The name field is required."})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	m := body(t, rec)
	errs, ok := m["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestNotFoundDefaultMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "")
	assert.Equal(t, "Not found", body(t, rec)["message"])
}
