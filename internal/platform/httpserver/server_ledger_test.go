package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ledgerservice "peerraise/contexts/crowdfunding/ledger-service"
	ledgerhttp "peerraise/contexts/crowdfunding/ledger-service/transport/http"
	"peerraise/internal/platform/callerauth"
	"peerraise/internal/platform/config"
)

const testSecret = "test-secret"

func newTestServer() *Server {
	return newTestServerWithIdentity(NewHeaderIdentityResolver(false))
}

func newTestServerWithIdentity(identity *IdentityResolver) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	module := ledgerservice.NewInMemoryModule(nil, logger)
	return New(module, Options{
		ServiceName: "peerraise-test",
		Identity:    identity,
		Logger:      logger,
	})
}

func doRequest(t *testing.T, server *Server, method string, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return out
}

func asUser(id string) map[string]string {
	return map[string]string{"X-User-Id": id}
}

func TestLedgerFlowOverHTTP(t *testing.T) {
	server := newTestServer()

	rr := doRequest(t, server, http.MethodPost, "/api/ledger/v1/users", `{"username":"alice"}`, asUser("alice"))
	if rr.Code != http.StatusOK || !decodeBody[ledgerhttp.RegisterUserResponse](t, rr).Registered {
		t.Fatalf("expected registration, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/users", `{"username":"other"}`, asUser("alice"))
	if rr.Code != http.StatusOK || decodeBody[ledgerhttp.RegisterUserResponse](t, rr).Registered {
		t.Fatalf("expected duplicate registration to report false, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/campaigns",
		`{"title":"Solar Roof","description":"panels for the school","goal":1000}`, asUser("alice"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if id := decodeBody[ledgerhttp.CreateCampaignResponse](t, rr).CampaignID; id != 0 {
		t.Fatalf("expected first campaign id 0, got %d", id)
	}

	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/campaigns/0/contributions", `{"amount":300}`, asUser("bob"))
	if rr.Code != http.StatusOK || !decodeBody[ledgerhttp.ContributeResponse](t, rr).Accepted {
		t.Fatalf("expected accepted contribution, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/campaigns/7/contributions", `{"amount":5}`, asUser("bob"))
	if rr.Code != http.StatusOK || decodeBody[ledgerhttp.ContributeResponse](t, rr).Accepted {
		t.Fatalf("expected unknown campaign to report false, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/api/ledger/v1/campaigns/0/statistics", "", nil)
	stats := decodeBody[ledgerhttp.CampaignStatisticsResponse](t, rr)
	if rr.Code != http.StatusOK || stats.TotalRaised != 300 || stats.TotalContributors != 1 {
		t.Fatalf("unexpected statistics %d %+v", rr.Code, stats)
	}

	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/campaigns/0/close", "", asUser("bob"))
	if rr.Code != http.StatusOK || !decodeBody[ledgerhttp.CloseCampaignResponse](t, rr).Closed {
		t.Fatalf("expected close, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/campaigns/0/close", "", asUser("bob"))
	if decodeBody[ledgerhttp.CloseCampaignResponse](t, rr).Closed {
		t.Fatalf("expected second close to report false, body=%s", rr.Body.String())
	}
	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/campaigns/0/contributions", `{"amount":1}`, asUser("carol"))
	if decodeBody[ledgerhttp.ContributeResponse](t, rr).Accepted {
		t.Fatalf("expected closed campaign to reject contribution, body=%s", rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodGet, "/api/ledger/v1/campaigns/search?query=SOLAR", "", nil)
	found := decodeBody[ledgerhttp.SearchCampaignsResponse](t, rr)
	if rr.Code != http.StatusOK || len(found.Items) != 1 {
		t.Fatalf("expected one match, got %d body=%s", rr.Code, rr.Body.String())
	}
	item := found.Items[0]
	if item.Creator != "alice" || item.Raised != 300 || !item.IsClosed || len(item.Contributors) != 1 || item.Contributors[0] != "bob" {
		t.Fatalf("unexpected campaign %+v", item)
	}
}

func TestSearchReturnsEmptyListWhenNothingMatches(t *testing.T) {
	server := newTestServer()
	rr := doRequest(t, server, http.MethodGet, "/api/ledger/v1/campaigns/search?query=nothing", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte(`"items":[]`)) {
		t.Fatalf("expected empty items array, got %s", rr.Body.String())
	}
}

func TestStatisticsForUnknownCampaignAreZero(t *testing.T) {
	server := newTestServer()
	rr := doRequest(t, server, http.MethodGet, "/api/ledger/v1/campaigns/42/statistics", "", nil)
	stats := decodeBody[ledgerhttp.CampaignStatisticsResponse](t, rr)
	if rr.Code != http.StatusOK || stats.TotalRaised != 0 || stats.TotalContributors != 0 {
		t.Fatalf("expected zero statistics, got %d %+v", rr.Code, stats)
	}
}

func TestUpdateRoutesRequireCaller(t *testing.T) {
	server := newTestServer()
	cases := []struct {
		name string
		path string
		body string
	}{
		{name: "register", path: "/api/ledger/v1/users", body: `{"username":"x"}`},
		{name: "create", path: "/api/ledger/v1/campaigns", body: `{"title":"t","description":"d","goal":1}`},
		{name: "contribute", path: "/api/ledger/v1/campaigns/0/contributions", body: `{"amount":1}`},
		{name: "close", path: "/api/ledger/v1/campaigns/0/close"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, server, http.MethodPost, tc.path, tc.body, nil)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAnonymousCallerWhenAllowed(t *testing.T) {
	server := newTestServerWithIdentity(NewHeaderIdentityResolver(true))
	rr := doRequest(t, server, http.MethodPost, "/api/ledger/v1/campaigns", `{"title":"t","description":"d","goal":1}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = doRequest(t, server, http.MethodGet, "/api/ledger/v1/campaigns/search", "", nil)
	found := decodeBody[ledgerhttp.SearchCampaignsResponse](t, rr)
	if len(found.Items) != 1 || found.Items[0].Creator != "2vxsx-fae" {
		t.Fatalf("expected anonymous creator, got %+v", found.Items)
	}
}

func TestBearerTokenIdentity(t *testing.T) {
	identity, err := NewIdentityResolver(config.AuthConfig{JWTSecret: testSecret, JWTIssuer: "peerraise"})
	if err != nil {
		t.Fatalf("identity resolver: %v", err)
	}
	server := newTestServerWithIdentity(identity)

	issuer, err := callerauth.NewIssuer(testSecret, "peerraise")
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	token, err := issuer.Issue("dana", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rr := doRequest(t, server, http.MethodPost, "/api/ledger/v1/users", `{"username":"dana"}`,
		map[string]string{"Authorization": "Bearer " + token})
	if rr.Code != http.StatusOK || !decodeBody[ledgerhttp.RegisterUserResponse](t, rr).Registered {
		t.Fatalf("expected token caller to register, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/users", `{"username":"eve"}`,
		map[string]string{"X-User-Id": "eve"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected header identity to be ignored in token mode, got %d", rr.Code)
	}

	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/users", `{"username":"eve"}`,
		map[string]string{"Authorization": "Bearer " + token + "x"})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected tampered token to be rejected, got %d", rr.Code)
	}

	otherKey, err := callerauth.NewIssuer("another-secret", "peerraise")
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	forged, err := otherKey.Issue("mallory", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/users", `{"username":"mallory"}`,
		map[string]string{"Authorization": "Bearer " + forged})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected token from another key to be rejected, got %d", rr.Code)
	}
}

func TestInvalidCampaignIDIsBadRequest(t *testing.T) {
	server := newTestServer()
	for _, path := range []string{
		"/api/ledger/v1/campaigns/abc/statistics",
		"/api/ledger/v1/campaigns/-1/statistics",
	} {
		rr := doRequest(t, server, http.MethodGet, path, "", nil)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, rr.Code)
		}
		if decodeBody[ledgerhttp.ErrorResponse](t, rr).Code != "invalid_campaign_id" {
			t.Fatalf("%s: unexpected body %s", path, rr.Body.String())
		}
	}
}

func TestMalformedJSONIsBadRequest(t *testing.T) {
	server := newTestServer()
	rr := doRequest(t, server, http.MethodPost, "/api/ledger/v1/campaigns", `{"title":`, asUser("alice"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	rr = doRequest(t, server, http.MethodPost, "/api/ledger/v1/campaigns", `{"title":"t","goal":-5}`, asUser("alice"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected negative goal to be rejected, got %d", rr.Code)
	}
}

func TestRequestIDIsEchoedOrGenerated(t *testing.T) {
	server := newTestServer()
	rr := doRequest(t, server, http.MethodGet, "/healthz", "", map[string]string{"X-Request-Id": "req-123"})
	if got := rr.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
	rr = doRequest(t, server, http.MethodGet, "/healthz", "", nil)
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected generated request id")
	}
}

func TestHealthz(t *testing.T) {
	server := newTestServer()
	rr := doRequest(t, server, http.MethodGet, "/healthz", "", nil)
	body := decodeBody[map[string]string](t, rr)
	if rr.Code != http.StatusOK || body["status"] != "ok" || body["service"] != "peerraise-test" {
		t.Fatalf("unexpected health response %d %v", rr.Code, body)
	}
}

func TestSwaggerDocIsServed(t *testing.T) {
	server := newTestServer()
	rr := doRequest(t, server, http.MethodGet, "/swagger/doc.json", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("/api/ledger/v1/campaigns/search")) {
		t.Fatalf("expected ledger routes in swagger doc")
	}
}
