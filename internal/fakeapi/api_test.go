package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testKey    = "test-key"
	testSecret = "test-secret"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()
	a := New(
		WithBcryptCost(bcrypt.MinCost),
		WithClock(func() time.Time { return time.UnixMilli(1578988351000) }),
	)
	require.NoError(t, a.Register(testKey, testSecret))
	return a
}

func authed(path string, extra url.Values) string {
	q := url.Values{"key": {testKey}, "secret": {testSecret}}
	for k, vs := range extra {
		q[k] = vs
	}
	return path + "?" + q.Encode()
}

func serve(t *testing.T, a *API, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, authed(path, nil), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister_RequiresBothHalves(t *testing.T) {
	a := New(WithBcryptCost(bcrypt.MinCost))
	assert.Error(t, a.Register("", "secret"))
	assert.Error(t, a.Register("key", ""))
}

func TestCredentials_Rejected(t *testing.T) {
	a := newTestAPI(t)

	tests := []struct {
		name  string
		query string
	}{
		{name: "none", query: "riskValue=5"},
		{name: "wrong secret", query: "key=test-key&secret=nope&riskValue=5"},
		{name: "unknown key", query: "key=other&secret=test-secret&riskValue=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/allocations?"+tt.query, nil)
			rec, body := serve(t, a, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "INVALID_CREDENTIALS", body["info"])
			assert.Equal(t, float64(401), body["status"])
		})
	}
}

func TestHealth_NoCredentialsNeeded(t *testing.T) {
	a := newTestAPI(t)
	rec, body := serve(t, a, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, _ = serve(t, a, httptest.NewRequest(http.MethodPost, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestEnvelope_Fields(t *testing.T) {
	a := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, authed("/api/v1/allocations", url.Values{"riskValue": {"5"}}), nil)
	req.Header.Set("X-Request-ID", "req-42")

	rec, body := serve(t, a, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get("X-Correlation-ID"))
	for _, field := range []string{"status", "info", "misc", "request", "datetime", "data"} {
		assert.Contains(t, body, field)
	}
	assert.Equal(t, "req-42", body["request"])
	assert.Equal(t, float64(1578988351000), body["datetime"])
	assert.Equal(t, "OK", body["info"])
}

func TestEnvelope_GeneratesRequestID(t *testing.T) {
	a := newTestAPI(t)
	_, body := serve(t, a, httptest.NewRequest(http.MethodGet, authed("/api/v1/allocations", url.Values{"riskValue": {"3"}}), nil))

	id, _ := body["request"].(string)
	assert.Len(t, id, 36)
}

func TestAllocations_Shapes(t *testing.T) {
	a := newTestAPI(t)

	t.Run("query", func(t *testing.T) {
		_, body := serve(t, a, httptest.NewRequest(http.MethodGet, authed("/api/v1/allocations", url.Values{"riskValue": {"3"}}), nil))
		data := body["data"].(map[string]interface{})
		assert.Equal(t, 20.0, data["SPAB"])
		assert.Equal(t, 26.0, data["VTWO"])
	})

	t.Run("json", func(t *testing.T) {
		_, body := serve(t, a, postJSON("/api/v1/allocations", `{"riskValue":5,"uid":"u1"}`))
		data := body["data"].(map[string]interface{})
		assert.Equal(t, 10.0, data["SPAB"])
	})

	t.Run("form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, authed("/api/v1/allocations", nil), strings.NewReader("riskValue=5"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		_, body := serve(t, a, req)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, 30.0, data["VOO"])
	})
}

func TestAllocations_Rejections(t *testing.T) {
	a := newTestAPI(t)

	_, body := serve(t, a, postJSON("/api/v1/allocations", `{"riskValue":900}`))
	assert.Equal(t, "INVALID_RISK_VALUE", body["info"])
	assert.NotContains(t, body, "data")

	_, body = serve(t, a, postJSON("/api/v1/allocations", `{"riskValue":"high"}`))
	assert.Equal(t, "INVALID_RISK_VALUE", body["info"])

	_, body = serve(t, a, postJSON("/api/v1/allocations", `{}`))
	assert.Equal(t, "MISSING_DATA", body["info"])
	assert.Equal(t, []interface{}{"riskValue"}, body["data"].(map[string]interface{})["missing"])
}

func TestAllocations_MalformedBody(t *testing.T) {
	a := newTestAPI(t)
	rec, body := serve(t, a, postJSON("/api/v1/allocations", `{"riskValue":`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_DATA", body["info"])
}

func TestRiskValue(t *testing.T) {
	a := newTestAPI(t)

	_, body := serve(t, a, postJSON("/api/v1/risk-value", `{"riskGrowth":5,"riskLevel":2,"riskLosses":4,"riskVolatility":2}`))
	assert.Equal(t, 3.25, body["data"].(map[string]interface{})["riskValue"])

	_, body = serve(t, a, postJSON("/api/v1/risk-value", `{"riskGrowth":500,"riskLevel":4,"riskLosses":4,"riskVolatility":5}`))
	assert.Equal(t, "INVALID_DATA", body["info"])
	assert.Equal(t, []interface{}{"riskGrowth"}, body["data"].(map[string]interface{})["invalid"])

	_, body = serve(t, a, postJSON("/api/v1/risk-value", `{"riskGrowth":5,"riskLevel":2,"riskLosses":4}`))
	assert.Equal(t, "MISSING_DATA", body["info"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, []interface{}{"riskVolatility"}, data["missing"])
	assert.NotContains(t, data, "invalid")
}

func TestRiskValue_MethodNotAllowed(t *testing.T) {
	a := newTestAPI(t)
	rec, _ := serve(t, a, httptest.NewRequest(http.MethodGet, authed("/api/v1/risk-value", nil), nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}

func TestIRAType(t *testing.T) {
	a := newTestAPI(t)

	_, body := serve(t, a, postJSON("/api/v1/ira-type", `{"IRAType":"SEP IRA"}`))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "SEP IRA", data["IRAType"])
	assert.Equal(t, "15%", data["maxContribution"])

	_, body = serve(t, a, postJSON("/api/v1/ira-type", `{"IRAType":"Traditional IRA"}`))
	assert.Equal(t, 6000.0, body["data"].(map[string]interface{})["maxContribution"])

	_, body = serve(t, a, postJSON("/api/v1/ira-type", `{"IRAType":"Invalid string"}`))
	assert.Equal(t, "INVALID_IRA_TYPE", body["info"])
}

func TestAccountOverview(t *testing.T) {
	a := newTestAPI(t)

	_, body := serve(t, a, postJSON("/api/v1/account-overview",
		`{"IRAType":"SEP IRA","contributionPercentage":5,"riskValue":4,"startDate":1578988351,"totalIncome":15000}`))
	require.Equal(t, "OK", body["info"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 750.0, data["amountSaved"].(map[string]interface{})["amountSaved"])
	assert.Equal(t, 2250.0, data["retirementSavings"].(map[string]interface{})["amountSaved"])

	_, body = serve(t, a, postJSON("/api/v1/account-overview",
		`{"IRAType":"Invalid string","contributionPercentage":10,"riskValue":5,"startDate":1578988351,"totalIncome":20000}`))
	assert.Equal(t, "INVALID_IRA_TYPE", body["info"])

	_, body = serve(t, a, postJSON("/api/v1/account-overview",
		`{"IRAType":"SEP IRA","contributionPercentage":10,"riskValue":8,"startDate":1578988351,"totalIncome":20000}`))
	assert.Equal(t, "INVALID_RISK_VALUE", body["info"])

	_, body = serve(t, a, postJSON("/api/v1/account-overview",
		`{"IRAType":"SEP IRA","contributionPercentage":150,"riskValue":3,"startDate":1578988351,"totalIncome":-1}`))
	assert.Equal(t, "INVALID_DATA", body["info"])
	assert.Equal(t, []interface{}{"contributionPercentage", "totalIncome"}, body["data"].(map[string]interface{})["invalid"])

	_, body = serve(t, a, postJSON("/api/v1/account-overview", `{"IRAType":"SEP IRA"}`))
	assert.Equal(t, "MISSING_DATA", body["info"])
	assert.Len(t, body["data"].(map[string]interface{})["missing"], 4)
}

func TestRequestCount(t *testing.T) {
	a := newTestAPI(t)
	assert.Equal(t, int64(0), a.RequestCount())

	serve(t, a, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	serve(t, a, postJSON("/api/v1/ira-type", `{"IRAType":"Roth IRA"}`))
	assert.Equal(t, int64(2), a.RequestCount())
}

func TestRecoveryMiddleware(t *testing.T) {
	a := newTestAPI(t)
	h := recoveryMiddleware(a.logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
