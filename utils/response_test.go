package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, http.StatusConflict, "insufficient stock: Adjustable Bench")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "insufficient stock: Adjustable Bench", body["error"])
}

func TestSendResponseCarriesStatusAndData(t *testing.T) {
	rec := httptest.NewRecorder()
	SendResponse(rec, http.StatusCreated, map[string]string{"orderid": "ord1"}, "Checkout complete", nil)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Checkout complete", body["message"])
	assert.Equal(t, float64(http.StatusCreated), body["status"])
}
