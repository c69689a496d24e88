package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bffaitrainer/bff-middleware/internal/config"
	"github.com/bffaitrainer/bff-middleware/internal/logging"
)

func newTestHandler(cfg config.Config) http.Handler {
	return New(cfg, logging.New(nil, "silent")).Handler()
}

func openConfig() config.Config {
	cfg := config.Defaults()
	cfg.Auth.AllowUnauth = true
	return cfg
}

func enforcedConfig(key string) config.Config {
	cfg := config.Defaults()
	cfg.Auth.AllowUnauth = false
	cfg.Auth.Key = key
	return cfg
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var decoded map[string]any
	if rr.Body.Len() > 0 {
		_ = json.Unmarshal(rr.Body.Bytes(), &decoded)
	}
	return rr, decoded
}

// Scenario: health check succeeds with enforcement on and no secret header.
func TestHealthBypassesGate(t *testing.T) {
	h := newTestHandler(enforcedConfig("sekrit"))

	rr, body := doJSON(t, h, "GET", "/health", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "bff-middleware", body["service"])
}

func TestDocsBypassesGate(t *testing.T) {
	h := newTestHandler(enforcedConfig("sekrit"))

	rr, body := doJSON(t, h, "GET", "/docs", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, body, "routes")
}

// Scenario: gated route without the secret is rejected uniformly, and the
// rejection happens before any adapter could run.
func TestAgentRouteRejectedWithoutKey(t *testing.T) {
	var providerCalls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		providerCalls.Add(1)
	}))
	defer srv.Close()

	cfg := enforcedConfig("sekrit")
	cfg.Providers.SystemeKey = "sys"
	cfg.Providers.SystemeEndpoint = srv.URL
	h := newTestHandler(cfg)

	rr, body := doJSON(t, h, "POST", "/gpt/ava", `{"intent":"noop"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "unauthorized", body["error"])
	assert.Zero(t, providerCalls.Load())
}

func TestGatedRouteAdmittedWithKey(t *testing.T) {
	h := newTestHandler(enforcedConfig("sekrit"))

	rr, body := doJSON(t, h, "POST", "/gpt/ava", `{"intent":"noop"}`,
		map[string]string{"x-bff-key": "sekrit"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "AVA", body["agent"])
}

func TestEnforcedEmptyKeyRejectsEverything(t *testing.T) {
	h := newTestHandler(enforcedConfig(""))

	rr, _ := doJSON(t, h, "POST", "/gpt/ava", `{"intent":"noop"}`,
		map[string]string{"x-bff-key": "anything"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Scenario: lead capture with no CRM credential returns the envelope; the
// adapter skip never leaks into the response.
func TestLeadCaptureWithoutCredential(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/gpt/leadai",
		`{"intent":"capture","data":{"lead":{"email":"a@b.com"}}}`, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "LEADAI", body["agent"])
	received := body["received"].(map[string]any)
	assert.Equal(t, "bff", received["brand"])
	assert.NotContains(t, body, "status")
}

// Scenario: lead capture with a configured CRM invokes the provider once
// with the lead email and the fixed tag.
func TestLeadCaptureInvokesCRM(t *testing.T) {
	var calls atomic.Int64
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	cfg := openConfig()
	cfg.Providers.SystemeKey = "sys"
	cfg.Providers.SystemeEndpoint = srv.URL
	h := newTestHandler(cfg)

	rr, body := doJSON(t, h, "POST", "/gpt/leadai",
		`{"intent":"capture","data":{"lead":{"email":"a@b.com"}}}`, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "LEADAI", body["agent"])
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, "a@b.com", gotBody["email"])
	assert.Equal(t, []any{"lead_generated"}, gotBody["tags"])
}

// Scenario: content publish forwards the post substructure verbatim.
func TestContentPublishInvokesSocial(t *testing.T) {
	var calls atomic.Int64
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"scheduled":true}`))
	}))
	defer srv.Close()

	cfg := openConfig()
	cfg.Providers.OcoyaKey = "oc"
	cfg.Providers.OcoyaEndpoint = srv.URL
	h := newTestHandler(cfg)

	rr, body := doJSON(t, h, "POST", "/gpt/convertai",
		`{"intent":"publish","data":{"post":{"channel":"linkedin","text":"hi"}}}`, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "CONVERTAI", body["agent"])
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, map[string]any{"channel": "linkedin", "text": "hi"}, gotBody)
}

func TestAgentSideEffectErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"crm down"}`))
	}))
	defer srv.Close()

	cfg := openConfig()
	cfg.Providers.SystemeKey = "sys"
	cfg.Providers.SystemeEndpoint = srv.URL
	h := newTestHandler(cfg)

	rr, body := doJSON(t, h, "POST", "/gpt/leadai",
		`{"intent":"capture","data":{"lead":{"email":"a@b.com"}}}`, nil)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "crm down", body["error"])
}

func TestManagerAgentIncludesHint(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/gpt/cris", `{"intent":"route"}`, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	extra := body["extra"].(map[string]any)
	assert.Contains(t, extra, "next")
}

func TestUnknownAgentIs404(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/gpt/ghostai", `{"intent":"x"}`, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, body["error"], "unknown agent")
}

func TestAgentMissingIntentIs400(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/gpt/ava", `{"brand":"bff"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "intent is required", body["error"])
}

// Scenario: callback without a code is a client error and no outbound call
// is made.
func TestAuthCallbackMissingCode(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	cfg := openConfig()
	cfg.OAuth = config.OAuthConfig{ClientID: "cid", ClientSecret: "cs", TokenURL: srv.URL}
	h := newTestHandler(cfg)

	rr, body := doJSON(t, h, "GET", "/auth/callback", "", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "missing code parameter", body["error"])
	assert.Zero(t, calls.Load())
}

func TestAuthCallbackExchanges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","token_type":"Bearer"}`))
	}))
	defer srv.Close()

	cfg := enforcedConfig("sekrit") // callback bypasses the gate
	cfg.OAuth = config.OAuthConfig{ClientID: "cid", ClientSecret: "cs", TokenURL: srv.URL}
	h := newTestHandler(cfg)

	rr, body := doJSON(t, h, "GET", "/auth/callback?code=abc", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "tok", body["access_token"])
	assert.Equal(t, "Bearer", body["token_type"])
}

func TestSocialPublishSkipsWithoutKey(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/social/publish-ocoya",
		`{"channel":"linkedin","text":"hello"}`, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "skipped", body["status"])
	assert.Equal(t, "OCOYA_API_KEY not set", body["reason"])
	payload := body["payload"].(map[string]any)
	assert.Equal(t, "hello", payload["text"])
}

func TestSocialPublishValidation(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/social/publish-ocoya", `{"channel":"x"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "channel and text are required", body["error"])
}

func TestSocialPublishPropagatesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"bad channel"}`))
	}))
	defer srv.Close()

	cfg := openConfig()
	cfg.Providers.OcoyaKey = "oc"
	cfg.Providers.OcoyaEndpoint = srv.URL
	h := newTestHandler(cfg)

	rr, body := doJSON(t, h, "POST", "/social/publish-ocoya",
		`{"channel":"nope","text":"x"}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "bad channel", body["error"])
}

func TestSystemeContactSkipsWithoutKey(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/systeme/contact", `{"email":"a@b.com"}`, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "skipped", body["status"])
	assert.Equal(t, "SYSTEME_API_KEY not set", body["reason"])
}

func TestSystemeContactRequiresEmail(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/systeme/contact", `{"first_name":"Ada"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "email is required", body["error"])
}

func TestGmailSendSkipsWithoutKey(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/gmail/send",
		`{"to":"x@y.com","subject":"hi","html":"<p>hi</p>"}`, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "skipped", body["status"])
	assert.Equal(t, "GMAIL_API_KEY not set", body["reason"])
}

func TestYouTubeSearchRequiresQuery(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "GET", "/youtube/search", "", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "missing q parameter", body["error"])
}

func TestYouTubeSearchRequiresCredential(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "GET", "/youtube/search?q=go", "", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "YOUTUBE_API_KEY not set", body["error"])
}

func TestVideoGenerateRequiresCredential(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/videoai/generate", `{"prompt":"cat"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VIDEOAI_API_KEY not set", body["error"])
}

func TestVideoGenerateRelaysProviderJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"job":"j-1"}`))
	}))
	defer srv.Close()

	cfg := openConfig()
	cfg.Providers.VideoAIKey = "vk"
	cfg.Providers.VideoAIEndpoint = srv.URL
	h := newTestHandler(cfg)

	rr, body := doJSON(t, h, "POST", "/videoai/generate", `{"prompt":"cat"}`, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "j-1", body["job"])
}

func TestCronDailyReport(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "POST", "/cron/daily-bff-report", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", body["status"])
	report := body["report"].(map[string]any)
	assert.Equal(t, "Daily BFF Report", report["headline"])
	assert.Len(t, report["sections"], 4)
}

func TestCronDailyReportSendsEmail(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"delivered":true}`))
	}))
	defer srv.Close()

	cfg := openConfig()
	cfg.Providers.GmailKey = "gm"
	cfg.Providers.GmailRelayEndpoint = srv.URL
	h := newTestHandler(cfg)

	rr, _ := doJSON(t, h, "POST", "/cron/daily-bff-report", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "vince@bffaitrainer.com", gotBody["to"])
	assert.Equal(t, "Daily BFF Report", gotBody["subject"])
}

func TestUnknownRouteIs404(t *testing.T) {
	h := newTestHandler(openConfig())

	rr, body := doJSON(t, h, "GET", "/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not found", body["error"])
}

// All 24 roster agents answer on their route with the uniform envelope.
func TestAllRosterAgentsRespond(t *testing.T) {
	h := newTestHandler(openConfig())

	for _, slug := range []string{
		"cris", "ava", "vinceassist", "leadai", "convertai", "demandai",
		"scheduleai", "verifyai", "fundingai", "docbot", "revenueai",
		"ytscribe", "qa", "compliance", "adsai", "opsai", "csai",
		"pricingai", "partnerai", "hiringai", "financeai", "auditai",
		"labsai", "growthai",
	} {
		rr, body := doJSON(t, h, "POST", "/gpt/"+slug, `{"intent":"ping"}`, nil)
		require.Equal(t, http.StatusOK, rr.Code, "agent %s", slug)
		assert.NotEmpty(t, body["agent"], "agent %s", slug)
		received := body["received"].(map[string]any)
		assert.Equal(t, "ping", received["intent"])
	}
}
