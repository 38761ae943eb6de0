package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func adminRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: adminToken})
	return req
}

func TestHashIP(t *testing.T) {
	a := hashIP("203.0.113.7")
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %q", a)
	}
	if a != hashIP("203.0.113.7") {
		t.Error("hash is not stable for the same IP")
	}
	if a == hashIP("203.0.113.8") {
		t.Error("different IPs hashed to the same value")
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	r := setupRouter()
	w := serve(r, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("expected redirect to /admin/login, got %q", loc)
	}
}

func TestAdminLogin(t *testing.T) {
	r := setupRouter()

	login := func(user, pass string) *httptest.ResponseRecorder {
		form := url.Values{"username": {user}, "password": {pass}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return serve(r, req)
	}

	if w := login("admin", "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", w.Code)
	}

	w := login("admin", "admin123")
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after login, got %d", w.Code)
	}
	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_token" {
			token = c.Value
		}
	}
	if token != adminToken {
		t.Error("login did not set the admin cookie")
	}
}

func TestAdminStats(t *testing.T) {
	r := setupRouter()
	recordRender(RenderStat{Width: 800, Height: 600, LineCount: 2, BandHeight: 40, FontSize: 20, SourceFormat: "jpeg", Downloaded: true})
	trackVisitorPrivacy("198.51.100.1", "test-agent", "/")

	w := serve(r, adminRequest(http.MethodGet, "/admin/api/stats"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var stats AdminStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if stats.TotalRenders < 1 || stats.TotalDownloads < 1 {
		t.Errorf("expected recorded render in stats, got %+v", stats)
	}
	if stats.TotalVisitors < 1 || stats.UniqueVisitors < 1 {
		t.Errorf("expected recorded visitor in stats, got %+v", stats)
	}
	if len(stats.RecentRenders) == 0 {
		t.Fatal("expected recent renders")
	}
	found := false
	for _, rs := range stats.RecentRenders {
		if rs.SourceFormat == "jpeg" && rs.Width == 800 && rs.Downloaded {
			found = true
		}
	}
	if !found {
		t.Errorf("recorded render missing from %+v", stats.RecentRenders)
	}
}

func TestAdminPages(t *testing.T) {
	r := setupRouter()
	recordRender(RenderStat{Width: 100, Height: 50, LineCount: 1, BandHeight: 40, FontSize: 20, SourceFormat: "png"})

	for _, path := range []string{"/admin/dashboard", "/admin/renders", "/admin/visitors"} {
		w := serve(r, adminRequest(http.MethodGet, path))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}

	w := serve(r, adminRequest(http.MethodGet, "/admin/export/stats"))
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "admin-stats.json") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
}

func TestAdminClearRenders(t *testing.T) {
	r := setupRouter()
	recordRender(RenderStat{Width: 10, Height: 10, LineCount: 0, BandHeight: 40, FontSize: 20})

	w := serve(r, adminRequest(http.MethodDelete, "/admin/renders"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if n := countRenders(t, ""); n != 0 {
		t.Errorf("expected no renders left, got %d", n)
	}
}
