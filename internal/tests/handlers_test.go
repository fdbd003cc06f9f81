package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "restaurant-catalog/internal/api/http"
	"restaurant-catalog/internal/domain"
	"restaurant-catalog/internal/mocks"
	"restaurant-catalog/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter(mockSvc *mocks.SessionServiceInterface) *mux.Router {
	handler := &httpapi.Handler{Sessions: mockSvc}
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func loadedState() domain.BrowserState {
	list := sampleCatalog()
	return domain.BrowserState{
		Status:    domain.StatusLoaded,
		Canonical: list,
		Displayed: list,
		Total:     len(list),
		Shown:     len(list),
	}
}

func TestHandler_openSession(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("Open", mock.Anything).Return("abc-123").Once()

	req := httptest.NewRequest("POST", "/api/sessions", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"session_id":"abc-123"`)
	assert.Contains(t, recorder.Body.String(), `"status":"loading"`)
}

func TestHandler_getSession(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	tests := []struct {
		name         string
		path         string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name: "state",
			path: "/api/sessions/s1",
			prepareMocks: func() {
				mockSvc.On("State", "s1").Return(loadedState(), nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"canonical_count":6`,
		},
		{
			name: "displayed",
			path: "/api/sessions/s1/restaurants",
			prepareMocks: func() {
				state := loadedState()
				state.Displayed = state.Displayed[2:3]
				mockSvc.On("State", "s1").Return(state, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"name":"Pizza Hut"`,
		},
		{
			name: "canonical",
			path: "/api/sessions/s1/restaurants/canonical",
			prepareMocks: func() {
				mockSvc.On("State", "s1").Return(loadedState(), nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"name":"Chai Point Express"`,
		},
		{
			name: "unknown_session",
			path: "/api/sessions/nope",
			prepareMocks: func() {
				mockSvc.On("State", "nope").Return(domain.BrowserState{}, service.ErrSessionNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			req := httptest.NewRequest("GET", testCase.path, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_applyRatingFilter(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	filtered := loadedState()
	filtered.Displayed = service.FilterByRating(filtered.Canonical, 4.5)
	filtered.Shown = len(filtered.Displayed)

	tests := []struct {
		name         string
		payload      string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name:    "default_threshold",
			payload: ``,
			prepareMocks: func() {
				mockSvc.On("ApplyRatingFilter", mock.Anything, "s1", (*float64)(nil)).Return(filtered, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"displayed_count":2`,
		},
		{
			name:    "explicit_threshold",
			payload: `{"threshold":4.5}`,
			prepareMocks: func() {
				mockSvc.On("ApplyRatingFilter", mock.Anything, "s1", mock.MatchedBy(func(v *float64) bool {
					return v != nil && *v == 4.5
				})).Return(filtered, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"name":"LunchBox - Meals and Thalis"`,
		},
		{
			name:         "negative_threshold",
			payload:      `{"threshold":-1}`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid_json",
			payload:      `bad json`,
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "not_loaded",
			payload: `{}`,
			prepareMocks: func() {
				mockSvc.On("ApplyRatingFilter", mock.Anything, "s1", (*float64)(nil)).
					Return(domain.BrowserState{}, service.ErrNotLoaded).Once()
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			req := httptest.NewRequest("POST", "/api/sessions/s1/filters/rating", bytes.NewBufferString(testCase.payload))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_queryAndNameFilter(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	withQuery := loadedState()
	withQuery.Query = "pizza"
	mockSvc.On("SetQuery", "s1", "pizza").Return(withQuery, nil).Once()

	req := httptest.NewRequest("PUT", "/api/sessions/s1/query", bytes.NewBufferString(`{"query":"pizza"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"query":"pizza"`)

	searched := withQuery
	searched.Displayed = service.FilterByName(withQuery.Canonical, "pizza")
	searched.Shown = len(searched.Displayed)
	mockSvc.On("ApplyNameFilter", mock.Anything, "s1", (*string)(nil)).Return(searched, nil).Once()

	req = httptest.NewRequest("POST", "/api/sessions/s1/filters/name", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	var state domain.BrowserState
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&state))
	assert.Equal(t, []string{"Domino's Pizza", "Pizza Hut"}, names(state.Displayed))

	req = httptest.NewRequest("PUT", "/api/sessions/s1/query", bytes.NewBufferString(`{`))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_closeSession(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("Close", "s1").Return(nil).Once()
	mockSvc.On("Close", "s2").Return(service.ErrSessionNotFound).Once()

	req := httptest.NewRequest("DELETE", "/api/sessions/s1", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	req = httptest.NewRequest("DELETE", "/api/sessions/s2", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_getRestaurantQRCode(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("RestaurantQRCode", "s1", "439737").Return([]byte("\x89PNG"), nil).Once()
	mockSvc.On("RestaurantQRCode", "s1", "0").Return(nil, service.ErrRestaurantNotFound).Once()

	req := httptest.NewRequest("GET", "/api/sessions/s1/restaurants/439737/qrcode", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))

	req = httptest.NewRequest("GET", "/api/sessions/s1/restaurants/0/qrcode", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_getRecentLoads(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := setupTestRouter(mockSvc)

	mockSvc.On("RecentLoads", mock.Anything, 3).Return([]domain.LoadRecord{{ID: 9, Status: "loaded"}}, nil).Once()
	mockSvc.On("RecentLoads", mock.Anything, 0).Return(nil, errors.New("db down")).Once()

	req := httptest.NewRequest("GET", "/api/loads?limit=3", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"id":9`)

	req = httptest.NewRequest("GET", "/api/loads", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

func TestRouter_CORSAndHealth(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	router := httpapi.NewRouter(httpapi.NewHandler(mockSvc, nil), []string{"http://localhost:1234"}, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "http://localhost:1234")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "http://localhost:1234", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Body.String(), `"status":"healthy"`)
}

func TestHandler_getFilterStats(t *testing.T) {
	mockSvc := mocks.NewSessionServiceInterface(t)
	stats := mocks.NewFilterStatsReader(t)

	stats.On("FilterStats", mock.Anything, 5).Return(domain.FilterStats{
		Applied:    map[string]int64{"rating": 3},
		Thresholds: map[string]int64{"4.5": 3},
		TopQueries: []domain.QueryCount{{Query: "pizza", Count: 2}},
	}, nil).Once()

	r := mux.NewRouter()
	httpapi.NewHandler(mockSvc, stats).RegisterRoutes(r)

	req := httptest.NewRequest("GET", "/api/stats/filters?top=5", nil)
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"query":"pizza"`)

	disabled := setupTestRouter(mockSvc)
	recorder = httptest.NewRecorder()
	disabled.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/stats/filters", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
