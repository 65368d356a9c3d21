package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mammutor/NINA/addressbook"
	"github.com/Mammutor/NINA/metrics"
	"github.com/Mammutor/NINA/routing"
	"github.com/Mammutor/NINA/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testAddresses = `address;plannedAreaId;nearest_node;coordinates
Aegidiimarkt 1;A;0,0;
Bült 5;A;200,0;
Insel 9;B;900,900;
`

func testGraph() *routing.Graph {
	g := routing.NewGraph()
	g.AddEdge("0,0", routing.Edge{Node: "200,0", Length: 200, Category: 1})
	g.AddEdge("0,0", routing.Edge{Node: "100,50", Length: 120, Category: 4})
	g.AddEdge("100,50", routing.Edge{Node: "200,0", Length: 120, Category: 4})
	g.AddNode("900,900")
	return g
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func newTestService(t *testing.T, withBook bool) *services.RoutingService {
	t.Helper()
	var book *addressbook.Book
	if withBook {
		var err error
		book, err = addressbook.Load(strings.NewReader(testAddresses))
		require.NoError(t, err)
	}
	settings := services.Settings{AbortFactor: 2, FallbackAbortDistance: 20000}
	return services.NewRoutingService(testGraph(), routing.NewPlanner(nil), book, settings, testLogger())
}

func newTestRouter(t *testing.T, withBook bool) *gin.Engine {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewRouter(ctx, RouterDeps{
		Log:         testLogger(),
		Service:     newTestService(t, withBook),
		CORSOrigins: []string{"*"},
	})
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, http.NoBody)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
	Error     *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		ApiVersion  string `json:"api_version"`
		ResultCount *int   `json:"result_count"`
	} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestCalculateRoute(t *testing.T) {
	r := newTestRouter(t, false)

	w := doRequest(r, http.MethodPost, "/api/routes", `{"start":"0,0","end":"200,0","preference":"safest"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)
	assert.Equal(t, env.RequestID, w.Header().Get("X-Request-ID"))
	require.NotNil(t, env.Meta)
	assert.Equal(t, APIVersion, env.Meta.ApiVersion)
	require.NotNil(t, env.Meta.ResultCount)
	assert.Equal(t, 1, *env.Meta.ResultCount)

	var route struct {
		Path           []string `json:"path"`
		Rating         string   `json:"rating"`
		DistanceMeters float64  `json:"distanceMeters"`
		Partial        bool     `json:"partial"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &route))
	assert.Equal(t, []string{"0,0", "100,50", "200,0"}, route.Path)
	assert.Equal(t, "good", route.Rating)
	assert.Equal(t, 240.0, route.DistanceMeters)
	assert.False(t, route.Partial)
}

func TestCalculateRouteRequestedAbortDistance(t *testing.T) {
	r := newTestRouter(t, false)

	w := doRequest(r, http.MethodPost, "/api/routes", `{"start":"0,0","end":"200,0","abortDistance":5000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var route struct {
		AbortDistance *float64 `json:"abortDistance"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &route))
	require.NotNil(t, route.AbortDistance)
	assert.Equal(t, 5000.0, *route.AbortDistance)
}

func TestCalculateRouteErrors(t *testing.T) {
	r := newTestRouter(t, false)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed body", `{"start":`, http.StatusBadRequest, ErrCodeInvalidInput},
		{"unknown preference", `{"start":"0,0","end":"200,0","preference":"scenic"}`, http.StatusBadRequest, ErrCodeInvalidInput},
		{"unknown node", `{"start":"5,5","end":"200,0"}`, http.StatusBadRequest, ErrCodeInvalidInput},
		{"address without book", `{"startAddress":"Bült 5","end":"0,0"}`, http.StatusBadRequest, ErrCodeInvalidInput},
		{"unreachable", `{"start":"0,0","end":"900,900"}`, http.StatusNotFound, ErrCodeNoRoute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/routes", tt.body)
			assert.Equal(t, tt.status, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("wrapped: %w", routing.ErrInvalidInput), http.StatusBadRequest, ErrCodeInvalidInput},
		{routing.ErrNoRoute, http.StatusNotFound, ErrCodeNoRoute},
		{services.ErrSuperseded, http.StatusConflict, ErrCodeSuperseded},
		{fmt.Errorf("search canceled: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, ErrCodeTimeout},
		{fmt.Errorf("search canceled: %w", context.Canceled), StatusClientClosedRequest, ErrCodeCanceled},
		{errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.ErrorsTotal.WithLabelValues(tt.code))

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondServiceError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.True(t, c.IsAborted())
			assert.Equal(t, tt.code, decode(t, w).Error.Code)
			assert.Equal(t, before+1, testutil.ToFloat64(metrics.ErrorsTotal.WithLabelValues(tt.code)))
		})
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondServiceError(c, errors.New("open /srv/graph.gob: permission denied"))

	assert.NotContains(t, w.Body.String(), "/srv/graph.gob")
}

func TestGetPreferences(t *testing.T) {
	r := newTestRouter(t, false)

	w := doRequest(r, http.MethodGet, "/api/preferences", "")
	require.Equal(t, http.StatusOK, w.Code)

	var prefs []struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &prefs))
	require.Len(t, prefs, 3)
	assert.Equal(t, "safest", prefs[0].Name)
	assert.Equal(t, "fastest", prefs[2].Name)
	assert.Equal(t, 2, prefs[2].Position)
}

type addressList struct {
	Addresses []string `json:"addresses"`
	Count     int      `json:"count"`
}

func TestSuggestAddresses(t *testing.T) {
	r := newTestRouter(t, true)

	w := doRequest(r, http.MethodGet, "/api/addresses?q=b", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list addressList
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	assert.Equal(t, []string{"Bült 5"}, list.Addresses)
	assert.Equal(t, 1, list.Count)

	w = doRequest(r, http.MethodGet, "/api/addresses?limit=2", "")
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	assert.Len(t, list.Addresses, 2)
}

func TestGetDestinations(t *testing.T) {
	r := newTestRouter(t, true)

	w := doRequest(r, http.MethodGet, "/api/addresses/destinations?start=Aegidiimarkt%201", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list addressList
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	assert.Equal(t, []string{"Bült 5"}, list.Addresses)

	w = doRequest(r, http.MethodGet, "/api/addresses/destinations", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/addresses/destinations?start=Nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrCodeNotFound, decode(t, w).Error.Code)
}

func TestAddressesWithoutBook(t *testing.T) {
	r := newTestRouter(t, false)

	for _, path := range []string{"/api/addresses?q=a", "/api/addresses/destinations?start=x"} {
		w := doRequest(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestCalculateRouteByAddress(t *testing.T) {
	r := newTestRouter(t, true)

	w := doRequest(r, http.MethodPost, "/api/routes", `{"startAddress":"Aegidiimarkt 1","endAddress":"Bült 5","preference":"fastest"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var route struct {
		Path []string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &route))
	assert.Equal(t, []string{"0,0", "200,0"}, route.Path)
}

func TestHealth(t *testing.T) {
	w := doRequest(newTestRouter(t, false), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := NewRouter(ctx, RouterDeps{
		Log:         testLogger(),
		Service:     newTestService(t, false),
		CORSOrigins: []string{"https://nina.example"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/routes", http.NoBody)
	req.Header.Set("Origin", "https://nina.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://nina.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("Origin", "https://elsewhere.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSAllowAll(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("Origin", "https://anywhere.example")
	w := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := NewRouter(ctx, RouterDeps{
		Log:       testLogger(),
		Service:   newTestService(t, false),
		RateLimit: 0.001,
		RateBurst: 1,
	})

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, http.MethodGet, "/health", "").Code)
}

func TestAdminHandler(t *testing.T) {
	router := mux.NewRouter()
	NewAdminHandler(testGraph()).RegisterRoutes(router)
	metrics.GraphNodes.Set(4)

	w := doRequest(router, http.MethodGet, "/graph/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats routing.GraphStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 4, stats.Nodes)
	assert.Equal(t, 3, stats.Edges)
	assert.Equal(t, 2, stats.Categories[4])

	w = doRequest(router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","nodes":4}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nina_graph_nodes 4")

	w = doRequest(router, http.MethodPost, "/graph/stats", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
