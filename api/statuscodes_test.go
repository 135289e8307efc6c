package api_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	router := setupRouter(t)
	req, _ := http.NewRequest(http.MethodGet, "/statuscodes/ok", nil)
	w := doRequest(t, router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Everything is fine", resp["message"])
}

func TestCreate(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name       string
		query      string
		form       url.Values
		wantStatus int
	}{
		{"valid name and id", "id=7", url.Values{"name": {"Widget"}}, http.StatusCreated},
		{"missing name", "id=7", url.Values{}, http.StatusBadRequest},
		{"empty name", "id=7", url.Values{"name": {""}}, http.StatusBadRequest},
		{"non-integer id", "id=abc", url.Values{"name": {"Widget"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, "/statuscodes/create?"+tt.query, strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := doRequest(t, router, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("success payload echoes name and id", func(t *testing.T) {
		form := url.Values{"name": {"Widget"}}
		req, _ := http.NewRequest(http.MethodPost, "/statuscodes/create?id=7", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := doRequest(t, router, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["message"], "7")
		assert.Equal(t, float64(7), resp["id"])
		assert.Equal(t, "Widget", resp["resource"])
	})

	t.Run("validation failure has no resource payload", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/statuscodes/create?id=7", strings.NewReader(""))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := doRequest(t, router, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotContains(t, resp, "resource")
	})
}

func TestDelete(t *testing.T) {
	router := setupRouter(t)

	for _, id := range []string{"1", "42", "9999"} {
		req, _ := http.NewRequest(http.MethodDelete, "/statuscodes/delete/"+id, nil)
		w := doRequest(t, router, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	}
}

func TestBadRequest(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"integer value", "?value=42", http.StatusOK},
		{"negative integer", "?value=-3", http.StatusOK},
		{"missing value", "", http.StatusBadRequest},
		{"non-integer value", "?value=abc", http.StatusBadRequest},
		{"float value", "?value=1.5", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/statuscodes/badrequest"+tt.query, nil)
			w := doRequest(t, router, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestUnauthorized(t *testing.T) {
	router := setupRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/statuscodes/unauthorized", nil)
	w := doRequest(t, router, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/statuscodes/unauthorized", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w = doRequest(t, router, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestForbidden(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name       string
		authz      string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"valid token", "Bearer VALID_TOKEN", http.StatusOK},
		{"wrong token", "Bearer WRONG_TOKEN", http.StatusForbidden},
		{"lowercase scheme", "bearer VALID_TOKEN", http.StatusForbidden},
		{"lowercase token", "Bearer valid_token", http.StatusForbidden},
		{"trailing space", "Bearer VALID_TOKEN ", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/statuscodes/forbidden", nil)
			if tt.authz != "" {
				req.Header.Set("Authorization", tt.authz)
			}
			w := doRequest(t, router, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestNotFound(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		id         string
		wantStatus int
	}{
		{"1", http.StatusOK},
		{"2", http.StatusNotFound},
		{"0", http.StatusNotFound},
		{"-1", http.StatusNotFound},
		{"abc", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/statuscodes/notfound/"+tt.id, nil)
			w := doRequest(t, router, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestConflict(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"duplicate exact case", `{"name":"Duplicate"}`, http.StatusConflict},
		{"duplicate lower case", `{"name":"duplicate"}`, http.StatusConflict},
		{"duplicate upper case", `{"name":"DUPLICATE"}`, http.StatusConflict},
		{"other name", `{"name":"Widget"}`, http.StatusCreated},
		{"empty name", `{"name":""}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, "/statuscodes/conflict", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := doRequest(t, router, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("created with fixed id 2", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/statuscodes/conflict", strings.NewReader(`{"name":"Widget"}`))
		req.Header.Set("Content-Type", "application/json")
		w := doRequest(t, router, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(2), resp["id"])
		assert.Equal(t, "Widget", resp["resource"])
	})
}

func TestUnprocessable(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"name long enough", `{"name":"abc"}`, http.StatusCreated},
		{"name too short", `{"name":"ab"}`, http.StatusUnprocessableEntity},
		{"empty name", `{"name":""}`, http.StatusUnprocessableEntity},
		{"missing name", `{}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, "/statuscodes/unprocessable", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := doRequest(t, router, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("created with fixed id 3", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/statuscodes/unprocessable", strings.NewReader(`{"name":"Widget"}`))
		req.Header.Set("Content-Type", "application/json")
		w := doRequest(t, router, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(3), resp["id"])
	})

	t.Run("failure carries field errors", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/statuscodes/unprocessable", strings.NewReader(`{"name":"ab"}`))
		req.Header.Set("Content-Type", "application/json")
		w := doRequest(t, router, req)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		errs, ok := resp["errors"].([]interface{})
		require.True(t, ok)
		require.Len(t, errs, 1)
		fieldErr := errs[0].(map[string]interface{})
		assert.Equal(t, "name", fieldErr["field"])
	})
}

func TestTooMany(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{"over limit", "?requests=6", http.StatusTooManyRequests},
		{"at limit", "?requests=5", http.StatusOK},
		{"under limit", "?requests=1", http.StatusOK},
		{"absent", "", http.StatusOK},
		{"unparseable counts as zero", "?requests=abc", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/statuscodes/toomany"+tt.query, nil)
			w := doRequest(t, router, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("success echoes the count", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/statuscodes/toomany?requests=5", nil)
		w := doRequest(t, router, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(5), resp["requests"])
	})
}

func TestInternalError(t *testing.T) {
	router := setupRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/statuscodes/internalerror", nil)
	w := doRequest(t, router, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest(http.MethodGet, "/statuscodes/internalerror?trigger=true", nil)
	w = doRequest(t, router, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")

	// Unparseable flags do not trigger the failure.
	req, _ = http.NewRequest(http.MethodGet, "/statuscodes/internalerror?trigger=banana", nil)
	w = doRequest(t, router, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBackendSimulations(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name     string
		path     string
		flag     string
		failCode int
	}{
		{"bad gateway", "/statuscodes/badgateway", "simulate", http.StatusBadGateway},
		{"service unavailable", "/statuscodes/serviceunavailable", "maintenance", http.StatusServiceUnavailable},
		{"gateway timeout", "/statuscodes/gatewaytimeout", "timeout", http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			w := doRequest(t, router, req)
			assert.Equal(t, http.StatusOK, w.Code)

			req, _ = http.NewRequest(http.MethodGet, tt.path+"?"+tt.flag+"=true", nil)
			w = doRequest(t, router, req)
			assert.Equal(t, tt.failCode, w.Code)

			req, _ = http.NewRequest(http.MethodGet, tt.path+"?"+tt.flag+"=false", nil)
			w = doRequest(t, router, req)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestNegotiate(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name       string
		accept     string
		wantStatus int
	}{
		{"json", "application/json", http.StatusOK},
		{"json among others", "text/html, application/json;q=0.9", http.StatusOK},
		{"html only", "text/html", http.StatusNotAcceptable},
		{"no header", "", http.StatusNotAcceptable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/statuscodes/negotiate", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			w := doRequest(t, router, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestValidateContent(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
	}{
		{"json content type", "application/json", `{"name":"Widget"}`, http.StatusCreated},
		{"uppercase content type", "Application/JSON", `{"name":"Widget"}`, http.StatusCreated},
		{"content type with charset", "application/json; charset=utf-8", `{"name":"Widget"}`, http.StatusUnsupportedMediaType},
		{"plain text", "text/plain", `{"name":"Widget"}`, http.StatusUnsupportedMediaType},
		{"no content type", "", `{"name":"Widget"}`, http.StatusUnsupportedMediaType},
		{"empty name", "application/json", `{"name":""}`, http.StatusBadRequest},
		{"missing name", "application/json", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, "/statuscodes/validate-content", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := doRequest(t, router, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestFixedRedirects(t *testing.T) {
	router := setupRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/statuscodes/notHereAnymore", nil)
	w := doRequest(t, router, req)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/statuscodes/ok", w.Header().Get("Location"))

	req, _ = http.NewRequest(http.MethodGet, "/statuscodes/willRedirectToTarget", nil)
	w = doRequest(t, router, req)
	assert.Equal(t, http.StatusPermanentRedirect, w.Code)
	assert.Equal(t, "/redirecttest/target", w.Header().Get("Location"))
}

// Repeating a GET with identical parameters must yield identical status and
// payload. The trace ID is pinned so the envelopes compare byte-equal.
func TestGetIdempotence(t *testing.T) {
	router := setupRouter(t)

	paths := []string{
		"/statuscodes/ok",
		"/statuscodes/badrequest?value=42",
		"/statuscodes/notfound/1",
		"/statuscodes/notfound/9",
		"/statuscodes/toomany?requests=6",
		"/statuscodes/negotiate",
	}

	for _, path := range paths {
		var firstCode int
		var firstBody string
		for i := 0; i < 3; i++ {
			req, _ := http.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("X-Trace-ID", "fixed-trace")
			w := doRequest(t, router, req)
			if i == 0 {
				firstCode = w.Code
				firstBody = w.Body.String()
				continue
			}
			assert.Equal(t, firstCode, w.Code, path)
			assert.Equal(t, firstBody, w.Body.String(), path)
		}
	}
}
