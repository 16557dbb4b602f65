package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharecalc/config"
	"sharecalc/models"
	"sharecalc/services"
)

const planBody = `{"directRecruits":10,"indirectRecruits":2,"networkDepth":2,"contractsPerUser":1,"realizationTimeMonths":12}`

type testServer struct {
	e         *echo.Echo
	calc      *CalculatorHandlers
	scenarios *ScenarioHandlers
	cache     *CacheHandlers
}

func newTestServer() *testServer {
	cfg := &config.Config{
		Cache:      config.CacheConfig{Enabled: true, TTL: 60},
		Comparison: config.ComparisonConfig{PessimisticFactor: 0.5, OptimisticFactor: 1.5},
	}
	cache := services.NewCacheService(cfg)
	calc := services.NewCalculatorService(nil, cache, cfg.CacheTTLDuration())
	comparison := services.NewComparisonService(calc, cfg.Comparison)

	return &testServer{
		e:         echo.New(),
		calc:      NewCalculatorHandlers(cfg, calc, comparison, nil),
		scenarios: NewScenarioHandlers(services.NewScenarioService(calc, nil, nil)),
		cache:     NewCacheHandlers(cache),
	}
}

func (ts *testServer) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return ts.e.NewContext(req, rec), rec
}

func TestComputePlan(t *testing.T) {
	ts := newTestServer()
	c, rec := ts.request(http.MethodPost, "/api/plan", planBody)

	require.NoError(t, ts.calc.ComputePlan(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.CompensationPlanResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 70, result.TotalUsers)
	assert.Equal(t, 1000.0, result.TotalOneTimeBonus)
	assert.Len(t, result.MonthlyData, 12)
}

func TestComputePlan_ViewModeQuery(t *testing.T) {
	ts := newTestServer()
	c, rec := ts.request(http.MethodPost, "/api/plan?view_mode=client", planBody)

	require.NoError(t, ts.calc.ComputePlan(c))

	var result models.CompensationPlanResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 500.0, result.TotalOneTimeBonus)
}

func TestComputePlan_StrictValidation(t *testing.T) {
	ts := newTestServer()
	body := `{"directRecruits":-1,"networkDepth":0}`

	// lenient by default
	c, rec := ts.request(http.MethodPost, "/api/plan", body)
	require.NoError(t, ts.calc.ComputePlan(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = ts.request(http.MethodPost, "/api/plan?strict=true", body)
	require.NoError(t, ts.calc.ComputePlan(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid input", resp.Error)
	assert.Len(t, resp.Details, 2)
}

func TestComputePlan_BadBody(t *testing.T) {
	ts := newTestServer()
	c, rec := ts.request(http.MethodPost, "/api/plan", `{"directRecruits":`)

	require.NoError(t, ts.calc.ComputePlan(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComputePlan_OverflowingAmounts(t *testing.T) {
	ts := newTestServer()
	body := `{"directRecruits":10,"indirectRecruits":2,"networkDepth":2,"contractsPerUser":1,"realizationTimeMonths":12,"cashbackSpending":1e307,"cashbackPercentage":100}`
	c, rec := ts.request(http.MethodPost, "/api/plan?strict=true", body)

	require.NoError(t, ts.calc.ComputePlan(c))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "projection exceeds the representable range", resp.Error)
	assert.NotEmpty(t, resp.Details)
}

func TestComputeCondo(t *testing.T) {
	ts := newTestServer()
	body := `{"input":{"cohorts":[{"yearAdded":1,"greenUnits":10},{"yearAdded":2,"lightUnits":4}]}}`
	c, rec := ts.request(http.MethodPost, "/api/condo", body)

	require.NoError(t, ts.calc.ComputeCondo(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.CondoSimulationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Years, 3)
	assert.Equal(t, 4200.0, result.TotalEarnings)
	assert.Nil(t, result.NetworkStats)
}

func TestComparePlan(t *testing.T) {
	ts := newTestServer()
	c, rec := ts.request(http.MethodPost, "/api/plan/compare", planBody)

	require.NoError(t, ts.calc.ComparePlan(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var cmp models.ScenarioComparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmp))
	assert.Len(t, cmp.Variants, 3)
	assert.Equal(t, 1750.0, cmp.OneTimeSpread)
}

func TestExportPlanCSV(t *testing.T) {
	ts := newTestServer()
	c, rec := ts.request(http.MethodPost, "/api/plan/export.csv", planBody)
	c.Request().Header.Set("Accept-Language", "it-IT,it;q=0.9")

	require.NoError(t, ts.calc.ExportPlanCSV(c))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "plan.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Livello,"))

	c, rec = ts.request(http.MethodPost, "/api/plan/export.csv?lang=en", planBody)
	c.Request().Header.Set("Accept-Language", "it-IT")
	require.NoError(t, ts.calc.ExportPlanCSV(c))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Level,"))
}

func TestGetRates(t *testing.T) {
	ts := newTestServer()
	c, rec := ts.request(http.MethodGet, "/api/rates", "")

	require.NoError(t, ts.calc.GetRates(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Rates     models.RateTable `json:"rates"`
		Status    string           `json:"status"`
		Supported bool             `json:"supported"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1.0.0", resp.Rates.Version)
	assert.Equal(t, "current", resp.Status)
	assert.True(t, resp.Supported)
	assert.Len(t, resp.Rates.Levels, 6)
}

func TestScenarioLifecycle(t *testing.T) {
	ts := newTestServer()

	c, rec := ts.request(http.MethodPost, "/api/scenarios", `{"name":"Base case","input":`+planBody+`}`)
	require.NoError(t, ts.scenarios.CreateScenario(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Scenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.NotNil(t, created.Result)
	assert.Equal(t, 1000.0, created.Result.TotalOneTimeBonus)

	c, rec = ts.request(http.MethodGet, "/api/scenarios/"+created.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, ts.scenarios.GetScenario(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = ts.request(http.MethodPut, "/api/scenarios/"+created.ID, `{"name":"Renamed","input":`+planBody+`}`)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, ts.scenarios.UpdateScenario(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = ts.request(http.MethodGet, "/api/scenarios", "")
	require.NoError(t, ts.scenarios.ListScenarios(c))
	var list []models.Scenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Renamed", list[0].Name)
	assert.WithinDuration(t, time.Now(), list[0].UpdatedAt, time.Minute)

	c, rec = ts.request(http.MethodDelete, "/api/scenarios/"+created.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, ts.scenarios.DeleteScenario(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = ts.request(http.MethodDelete, "/api/scenarios/"+created.ID, "")
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, ts.scenarios.DeleteScenario(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateScenario_Invalid(t *testing.T) {
	ts := newTestServer()
	c, rec := ts.request(http.MethodPost, "/api/scenarios", `{"input":`+planBody+`}`)

	require.NoError(t, ts.scenarios.CreateScenario(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetScenarioStats_WithoutPersistence(t *testing.T) {
	ts := newTestServer()
	c, rec := ts.request(http.MethodGet, "/api/scenarios/stats", "")

	require.NoError(t, ts.scenarios.GetScenarioStats(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCacheEndpoints(t *testing.T) {
	ts := newTestServer()

	c, _ := ts.request(http.MethodPost, "/api/plan", planBody)
	require.NoError(t, ts.calc.ComputePlan(c))

	c, rec := ts.request(http.MethodGet, "/cache/status", "")
	require.NoError(t, ts.cache.GetCacheStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		Mode    string `json:"mode"`
		Healthy bool   `json:"healthy"`
		Stats   struct {
			InMemoryKeys int `json:"in_memory_keys"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "in-memory", status.Mode)
	assert.True(t, status.Healthy)
	assert.Equal(t, 1, status.Stats.InMemoryKeys)

	c, rec = ts.request(http.MethodPost, "/cache/clear", "")
	require.NoError(t, ts.cache.ClearCache(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
