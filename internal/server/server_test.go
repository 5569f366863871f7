package server

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/storage/memory"
)

// growthJSON reaches the goal in 2030
const growthJSON = `{
  "startingYear": 2020,
  "initialCapital": 100000,
  "avgYearlyReturns": 10,
  "withdrawalRate": 4,
  "retirementIncomeTarget": 10000,
  "currency": "USD"
}`

const growthYAML = `starting_year: 2020
initial_capital: 100000
avg_yearly_returns: 10
withdrawal_rate: 4
retirement_income_target: 10000
`

func newTestServer() *Server {
	s := NewServer(calculation.NewProjectionEngine())
	s.Store = memory.NewConfigStore()
	return s
}

func do(s *Server, method, uri, contentType, body string) *fasthttp.RequestCtx {
	var ctx fasthttp.RequestCtx
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	if contentType != "" {
		ctx.Request.Header.SetContentType(contentType)
	}
	ctx.Request.SetBodyString(body)
	s.Handler()(&ctx)
	return &ctx
}

func decodeError(t *testing.T, ctx *fasthttp.RequestCtx) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	assert.Equal(t, ctx.Response.StatusCode(), resp.Status)
	return resp
}

func TestHealthz(t *testing.T) {
	ctx := do(newTestServer(), fasthttp.MethodGet, "/healthz", "", "")
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.JSONEq(t, `{"status":"ok"}`, string(ctx.Response.Body()))
}

func TestProjection(t *testing.T) {
	ctx := do(newTestServer(), fasthttp.MethodPost, "/v1/projection?years=12", "application/json", growthJSON)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var projection domain.Projection
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &projection))
	assert.Len(t, projection.Rows, 12)
	require.NotNil(t, projection.Summary.GoalYear)
	assert.Equal(t, 2030, *projection.Summary.GoalYear)
	assert.Equal(t, "USD", projection.Currency)
}

func TestProjection_DefaultYearsAndYAML(t *testing.T) {
	ctx := do(newTestServer(), fasthttp.MethodPost, "/v1/projection", "application/yaml", growthYAML)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	var projection domain.Projection
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &projection))
	assert.Len(t, projection.Rows, calculation.RowsToShow)
}

func TestProjection_FormatAndTemplate(t *testing.T) {
	s := newTestServer()

	ctx := do(s, fasthttp.MethodPost, "/v1/projection?years=3&format=csv", "application/json", growthJSON)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "text/csv; charset=utf-8", string(ctx.Response.Header.ContentType()))
	assert.Contains(t, string(ctx.Response.Body()), "2022")
	assert.NotContains(t, string(ctx.Response.Body()), "2023")

	ctx = do(s, fasthttp.MethodPost, "/v1/projection?years=20&template=bull_market", "application/json", growthJSON)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var projection domain.Projection
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &projection))
	assert.Equal(t, 2029, *projection.Summary.GoalYear)
}

func TestProjection_Errors(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name    string
		method  string
		uri     string
		body    string
		status  int
		message string
	}{
		{"bad years", fasthttp.MethodPost, "/v1/projection?years=abc", growthJSON, 400, "years must be"},
		{"too many years", fasthttp.MethodPost, "/v1/projection?years=1000", growthJSON, 400, "years must be"},
		{"unknown format", fasthttp.MethodPost, "/v1/projection?format=pdf", growthJSON, 400, "unknown format"},
		{"unknown template", fasthttp.MethodPost, "/v1/projection?template=moon", growthJSON, 400, "template moon not found"},
		{"malformed body", fasthttp.MethodPost, "/v1/projection", "{", 400, "failed to parse JSON"},
		{"missing field", fasthttp.MethodPost, "/v1/projection", `{"startingYear": 2020}`, 400, "initial_capital"},
		{"wrong method", fasthttp.MethodGet, "/v1/projection", "", 405, "Method not allowed"},
		{"unknown route", fasthttp.MethodGet, "/v2/nothing", "", 404, "no route"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := do(s, tt.method, tt.uri, "application/json", tt.body)
			assert.Equal(t, tt.status, ctx.Response.StatusCode())
			assert.Contains(t, decodeError(t, ctx).Message, tt.message)
		})
	}
}

func TestValidate(t *testing.T) {
	s := newTestServer()

	ctx := do(s, fasthttp.MethodPost, "/v1/validate", "application/json", growthJSON)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var ok ValidationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &ok))
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Diagnostics)

	withBadFlow := strings.Replace(growthJSON, `"currency": "USD"`,
		`"currency": "USD", "incomes": [{"name": "side job", "amount": 100, "recurring": true}]`, 1)
	ctx = do(s, fasthttp.MethodPost, "/v1/validate", "application/json", withBadFlow)
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var bad ValidationResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &bad))
	assert.False(t, bad.Valid)
	require.Len(t, bad.Diagnostics, 1)
	assert.Equal(t, "side job", bad.Diagnostics[0].Name)

	ctx = do(s, fasthttp.MethodPost, "/v1/validate", "application/json", `{"startingYear": 2020, "initialCapital": 1, "avgYearlyReturns": 1, "withdrawalRate": -1, "retirementIncomeTarget": 1}`)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
	assert.Contains(t, decodeError(t, ctx).Message, "withdrawal_rate")
}

func TestTemplates(t *testing.T) {
	ctx := do(newTestServer(), fasthttp.MethodGet, "/v1/templates", "", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())

	var templates []TemplateResponse
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &templates))
	require.NotEmpty(t, templates)
	names := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		names = append(names, tmpl.Name)
		assert.NotEmpty(t, tmpl.Description)
	}
	assert.Contains(t, names, "bear_market")
	assert.Contains(t, names, "frugal")
}

func TestProfiles(t *testing.T) {
	s := newTestServer()

	ctx := do(s, fasthttp.MethodPut, "/v1/profiles/base", "application/json", growthJSON)
	require.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode(), string(ctx.Response.Body()))

	ctx = do(s, fasthttp.MethodGet, "/v1/profiles", "", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `"name":"base"`)

	ctx = do(s, fasthttp.MethodGet, "/v1/profiles/base", "", "")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	var cfg domain.Configuration
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &cfg))
	assert.Equal(t, 2020, cfg.StartingYear)

	ctx = do(s, fasthttp.MethodDelete, "/v1/profiles/base", "", "")
	assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())

	ctx = do(s, fasthttp.MethodGet, "/v1/profiles/base", "", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())

	ctx = do(s, fasthttp.MethodPut, "/v1/profiles/..bad", "application/json", growthJSON)
	assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())

	ctx = do(s, fasthttp.MethodPost, "/v1/profiles/base", "application/json", growthJSON)
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
}

func TestProfilesDisabledWithoutStore(t *testing.T) {
	s := NewServer(calculation.NewProjectionEngine())
	ctx := do(s, fasthttp.MethodGet, "/v1/profiles", "", "")
	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}
