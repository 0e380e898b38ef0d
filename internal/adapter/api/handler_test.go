package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coder-aditya-04/Jal-Rakshya/internal/domain"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/repository"
	"github.com/Coder-aditya-04/Jal-Rakshya/internal/scoring"
)

func f(v float64) *float64 { return &v }

func setupRouter(t *testing.T) (*gin.Engine, repository.RecordRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	engine := domain.NewEngine(
		domain.NewEvaluator(domain.DefaultThresholds()),
		domain.NewTrendScanner(scoring.NewWeightedCalculator()),
	)
	h := NewHandler(repo, engine, slog.Default())

	router := gin.New()
	h.RegisterRoutes(router)
	return router, repo
}

func doRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestEvaluate_ReturnsAlerts(t *testing.T) {
	router, _ := setupRouter(t)

	body := []byte(`{
		"current": {"location": "Pune", "year": 2024, "groundwaterLevel": 16.0, "rainfall": 650}
	}`)
	rec := doRequest(router, http.MethodPost, "/api/v1/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Location string         `json:"location"`
		Year     int            `json:"year"`
		Alerts   []domain.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "Pune", resp.Location)
	assert.Equal(t, 2024, resp.Year)
	require.Len(t, resp.Alerts, 2)
	assert.Equal(t, domain.CategoryWaterLevel, resp.Alerts[0].Category)
	assert.Equal(t, domain.SeverityCritical, resp.Alerts[0].Type)
	assert.Equal(t, domain.CategoryRainfall, resp.Alerts[1].Category)
}

func TestEvaluate_WithHistoryRaisesTrend(t *testing.T) {
	router, _ := setupRouter(t)

	payload := map[string]any{
		"current": map[string]any{"location": "Latur", "year": 2023, "groundwaterLevel": 13.0},
		"history": []map[string]any{
			{"location": "Latur", "year": 2020, "groundwaterLevel": 10.0},
			{"location": "Latur", "year": 2021, "groundwaterLevel": 11.0},
			{"location": "Latur", "year": 2022, "groundwaterLevel": 12.0},
			{"location": "Latur", "year": 2023, "groundwaterLevel": 13.0},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := doRequest(router, http.MethodPost, "/api/v1/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Alerts []domain.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	var categories []domain.Category
	for _, a := range resp.Alerts {
		categories = append(categories, a.Category)
	}
	assert.Contains(t, categories, domain.CategoryWaterLevel)
	assert.Contains(t, categories, domain.CategoryTrend)
}

func TestEvaluate_EmptyAlertsIsArray(t *testing.T) {
	router, _ := setupRouter(t)

	body := []byte(`{"current": {"location": "Pune", "year": 2024}}`)
	rec := doRequest(router, http.MethodPost, "/api/v1/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alerts":[]`)
}

func TestEvaluate_MissingLocation(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/v1/evaluate", []byte(`{"current": {"year": 2024}}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluate_MalformedBody(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/v1/evaluate", []byte(`{not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetLocations(t *testing.T) {
	router, repo := setupRouter(t)
	ctx := t.Context()

	require.NoError(t, repo.UpsertRecord(ctx, domain.WaterRecord{Location: "Pune", Year: 2023}))
	require.NoError(t, repo.UpsertRecord(ctx, domain.WaterRecord{Location: "Latur", Year: 2023}))

	rec := doRequest(router, http.MethodGet, "/api/v1/locations", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Locations []string `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Latur", "Pune"}, resp.Locations)
}

func TestGetLocations_EmptyIsArray(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/locations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"locations":[]`)
}

func TestGetRecords(t *testing.T) {
	router, repo := setupRouter(t)
	ctx := t.Context()

	require.NoError(t, repo.UpsertRecord(ctx, domain.WaterRecord{Location: "Pune", Year: 2022, GroundwaterLevel: f(11.0)}))
	require.NoError(t, repo.UpsertRecord(ctx, domain.WaterRecord{Location: "Pune", Year: 2023, GroundwaterLevel: f(11.8)}))

	rec := doRequest(router, http.MethodGet, "/api/v1/locations/Pune/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Records []domain.WaterRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Records, 2)
	assert.Equal(t, 2022, resp.Records[0].Year)
	assert.Equal(t, 2023, resp.Records[1].Year)
}

func TestGetRecords_UnknownLocation(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/locations/Nowhere/records", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAlerts_EvaluatesLatestAgainstHistory(t *testing.T) {
	router, repo := setupRouter(t)
	ctx := t.Context()

	for year, level := range map[int]float64{2020: 10, 2021: 11, 2022: 12} {
		require.NoError(t, repo.UpsertRecord(ctx, domain.WaterRecord{
			Location: "Latur", Year: year, GroundwaterLevel: f(level),
		}))
	}
	require.NoError(t, repo.UpsertRecord(ctx, domain.WaterRecord{
		Location: "Latur", Year: 2023, GroundwaterLevel: f(15.5),
	}))

	rec := doRequest(router, http.MethodGet, "/api/v1/locations/Latur/alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Year   int            `json:"year"`
		Alerts []domain.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2023, resp.Year)

	var categories []domain.Category
	for _, a := range resp.Alerts {
		categories = append(categories, a.Category)
	}
	assert.Contains(t, categories, domain.CategoryWaterLevel)
	assert.Contains(t, categories, domain.CategoryTrend)
}

func TestGetAlerts_UnknownLocation(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/locations/Nowhere/alerts", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAdvisories_AlwaysFive(t *testing.T) {
	router, repo := setupRouter(t)

	require.NoError(t, repo.UpsertRecord(t.Context(), domain.WaterRecord{
		Location: "Pune", Year: 2023, Rainfall: f(620), ScarcityLevel: domain.ScarcitySevere,
	}))

	rec := doRequest(router, http.MethodGet, "/api/v1/locations/Pune/advisories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Advisories []domain.GovUpdate `json:"advisories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Advisories, 5)
	for i, u := range resp.Advisories {
		assert.Equal(t, i+1, u.ID)
	}
}

func TestGetAdvisories_UnknownLocation(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/locations/Nowhere/advisories", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(1))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := doRequest(router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, first.Code)

	// Burst of 1: the second immediate request is rejected.
	second := doRequest(router, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
