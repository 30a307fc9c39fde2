package adapthttp_test

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	adapthttp "wellness/internal/adapter/http"
	"wellness/internal/adapter/memory"
	"wellness/internal/logger"
)

func newAuthServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := adapthttp.New(newServices(memory.New()), t.TempDir(), logger.Nop(), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return ts, &http.Client{Jar: jar}
}

func post(t *testing.T, c *http.Client, url, body string) *http.Response {
	t.Helper()
	resp, err := c.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, c *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := c.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	ts, c := newAuthServer(t)

	for _, path := range []string{"/api/weight/logs", "/api/goal", "/api/calories/today", "/api/calendar/balance", "/api/auth/me"} {
		if resp := get(t, c, ts.URL+path); resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, resp.StatusCode)
		}
	}

	if resp := get(t, c, ts.URL+"/api/health"); resp.StatusCode != http.StatusOK {
		t.Errorf("health should not require auth, got %d", resp.StatusCode)
	}
}

func TestSetupLoginLogout(t *testing.T) {
	ts, c := newAuthServer(t)

	expectStatus(t, post(t, c, ts.URL+"/api/auth/setup", `{"username":"ana","password":"short"}`), http.StatusBadRequest)
	expectStatus(t, post(t, c, ts.URL+"/api/auth/setup", `{"username":"ana","password":"correct horse"}`), http.StatusOK)
	expectStatus(t, post(t, c, ts.URL+"/api/auth/setup", `{"username":"bob","password":"correct horse"}`), http.StatusConflict)

	expectStatus(t, post(t, c, ts.URL+"/api/auth/login", `{"username":"ana","password":"wrong password"}`), http.StatusUnauthorized)
	expectStatus(t, post(t, c, ts.URL+"/api/auth/login", `{"username":"ana","password":"correct horse"}`), http.StatusOK)

	body := expectStatus(t, get(t, c, ts.URL+"/api/auth/me"), http.StatusOK)
	if body["username"] != "ana" {
		t.Fatalf("expected ana, got %v", body["username"])
	}
	expectStatus(t, get(t, c, ts.URL+"/api/calories/today"), http.StatusOK)

	expectStatus(t, post(t, c, ts.URL+"/api/auth/logout", ``), http.StatusOK)
	expectStatus(t, get(t, c, ts.URL+"/api/auth/me"), http.StatusUnauthorized)
}

func TestForwardAuthHeader(t *testing.T) {
	ts, c := newAuthServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/auth/me", nil)
	req.Header.Set("Remote-User", "sso-user")
	resp, err := c.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body := expectStatus(t, resp, http.StatusOK)
	if body["username"] != "sso-user" {
		t.Fatalf("expected auto-provisioned sso-user, got %v", body["username"])
	}
}

func TestSSODisabled(t *testing.T) {
	ts, c := newAuthServer(t)

	body := expectStatus(t, get(t, c, ts.URL+"/api/auth/config"), http.StatusOK)
	if body["sso_enabled"] != false {
		t.Fatalf("expected sso disabled, got %v", body["sso_enabled"])
	}
	expectStatus(t, get(t, c, ts.URL+"/api/auth/sso/login"), http.StatusNotFound)
}

func TestLoginIsRateLimited(t *testing.T) {
	ts, c := newAuthServer(t)

	for i := 0; i < 5; i++ {
		expectStatus(t, post(t, c, ts.URL+"/api/auth/login", `{"username":"ana","password":"guess guess"}`), http.StatusUnauthorized)
	}
	expectStatus(t, post(t, c, ts.URL+"/api/auth/login", `{"username":"ana","password":"guess guess"}`), http.StatusTooManyRequests)

	if resp := get(t, c, ts.URL+"/api/health"); resp.StatusCode != http.StatusOK {
		t.Fatalf("other routes should be unaffected, got %d", resp.StatusCode)
	}
}
