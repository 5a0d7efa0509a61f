package program

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgznml/WorkoutTracker/internal/auth"
)

type configStoreMock struct {
	values map[string]map[string]string // username -> key -> value
}

func newConfigStoreMock() *configStoreMock {
	return &configStoreMock{values: map[string]map[string]string{}}
}

func (m *configStoreMock) Get(_ context.Context, username, key string) (string, error) {
	value, ok := m.values[username][key]
	if !ok {
		return "", ErrConfigNotFound
	}
	return value, nil
}

func (m *configStoreMock) Set(_ context.Context, username, key, value string) error {
	if m.values[username] == nil {
		m.values[username] = map[string]string{}
	}
	m.values[username][key] = value
	return nil
}

func newTestRouter(config *configStoreMock) *mux.Router {
	handler := NewHandler(config, NewResolver(config))
	router := mux.NewRouter()
	handler.SetupRoutes(router)
	return router
}

func doRequest(t *testing.T, router *mux.Router, username, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var bodyReader *strings.Reader
	if body == "" {
		bodyReader = strings.NewReader("")
	} else {
		bodyReader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, bodyReader)
	require.NoError(t, err)
	req = req.WithContext(auth.WithUser(req.Context(), username))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Config(t *testing.T) {
	config := newConfigStoreMock()
	router := newTestRouter(config)

	// unset config reads back empty
	rr := doRequest(t, router, "mileusna", "GET", "/program/config", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"startDate":""}`, rr.Body.String())

	rr = doRequest(t, router, "mileusna", "POST", "/program/config", `{"startDate":"2025-11-03"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "updated", rr.Body.String())

	rr = doRequest(t, router, "mileusna", "GET", "/program/config", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"startDate":"2025-11-03"}`, rr.Body.String())

	// other users keep their own start date
	rr = doRequest(t, router, "other", "GET", "/program/config", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"startDate":""}`, rr.Body.String())
}

func TestHandler_Config_InvalidStartDate(t *testing.T) {
	router := newTestRouter(newConfigStoreMock())

	for _, startDate := range []string{"", "03/11/2025", "not-a-date"} {
		rr := doRequest(t, router, "mileusna", "POST", "/program/config",
			fmt.Sprintf(`{"startDate":"%s"}`, startDate))
		assert.Equal(t, http.StatusBadRequest, rr.Code, "start date: %q", startDate)
	}
}

func TestHandler_Week(t *testing.T) {
	config := newConfigStoreMock()
	require.NoError(t, config.Set(context.Background(), "mileusna", StartDateKey, "2025-11-03"))
	router := newTestRouter(config)

	rr := doRequest(t, router, "mileusna", "GET", "/program/week?date=2025-11-12", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"date":"2025-11-12","weekday":"Mercoledì","week":2}`, rr.Body.String())

	// no configured start date means week 1
	rr = doRequest(t, router, "other", "GET", "/program/week?date=2025-11-12", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"date":"2025-11-12","weekday":"Mercoledì","week":1}`, rr.Body.String())

	rr = doRequest(t, router, "mileusna", "GET", "/program/week?date=12.11.2025", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Unauthenticated(t *testing.T) {
	router := newTestRouter(newConfigStoreMock())

	req, err := http.NewRequest("GET", "/program/week", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
