package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginReturnsUserAndSetsSessionCookie(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/sessions",
		`{"username":"john.doe","password":"password"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "john.doe", user["username"])
	assert.Equal(t, "John Doe", user["name"])
	assert.NotContains(t, user, "password")

	assert.NotEmpty(t, w.Result().Cookies())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	api := newTestAPI(t)

	wrongPassword := api.do(http.MethodPost, "/api/sessions",
		`{"username":"john.doe","password":"nope"}`, nil)
	unknownUser := api.do(http.MethodPost, "/api/sessions",
		`{"username":"who.dis","password":"password"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)

	// Both failure modes must present the identical payload.
	assert.JSONEq(t, `{"message":"Incorrect username and/or password."}`, wrongPassword.Body.String())
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/sessions", `{"username":"john.doe"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var payload struct {
		Errors []map[string]any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "password", payload.Errors[0]["field"])
}

func TestGetCurrentSession(t *testing.T) {
	api := newTestAPI(t)

	// Unauthenticated introspection.
	w := api.do(http.MethodGet, "/api/sessions/current", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthenticated user!"}`, w.Body.String())

	// Authenticated introspection returns the principal.
	cookies := api.login(t, "john.doe", "password")
	w = api.do(http.MethodGet, "/api/sessions/current", "", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var user map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.Equal(t, "john.doe", user["username"])
}

func TestLogout(t *testing.T) {
	api := newTestAPI(t)
	cookies := api.login(t, "john.doe", "password")

	w := api.do(http.MethodDelete, "/api/sessions/current", "", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	// The response carries an expired cookie; a client honoring it no
	// longer has a session.
	expired := w.Result().Cookies()
	require.NotEmpty(t, expired)
	assert.Negative(t, expired[0].MaxAge)

	w = api.do(http.MethodGet, "/api/sessions/current", "", expired)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutWithoutSessionSucceeds(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodDelete, "/api/sessions/current", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
