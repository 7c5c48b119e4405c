package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorDetails(rec, http.StatusUnprocessableEntity, "step incomplete", []string{"email is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"step incomplete","details":["email is required"]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondInternalError(rec)
	assert.JSONEq(t, `{"message":"`+msgInternalError+`"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Code string `json:"code"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"SAVE20"}`))
	require.NoError(t, DecodeJSON(req, &out))
	assert.Equal(t, "SAVE20", out.Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"x","extra":1}`))
	assert.Error(t, DecodeJSON(req, &out), "unknown fields are rejected")

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, DecodeJSON(req, &out), ErrEmptyBody)
	assert.NoError(t, DecodeOptionalJSON(req, &out))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(req, &out), ErrEmptyBody)
}

func TestMessageOrDefault(t *testing.T) {
	assert.Equal(t, "Coupon expired", MessageOrDefault("Coupon expired", "fallback"))
	assert.Equal(t, "fallback", MessageOrDefault("", "fallback"))
}
