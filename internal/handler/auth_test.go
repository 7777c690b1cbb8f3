package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/concrem/helpdesk/internal/config"
	"github.com/concrem/helpdesk/internal/model"
	"github.com/concrem/helpdesk/internal/store"
	"github.com/concrem/helpdesk/internal/utils"
)

type fakeUsers struct {
	byUsername map[string]model.Usuario
}

func (f *fakeUsers) List(context.Context) ([]model.Usuario, error) {
	out := []model.Usuario{}
	for _, u := range f.byUsername {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) Get(_ context.Context, id string) (model.Usuario, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return model.Usuario{}, store.ErrNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (model.Usuario, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return model.Usuario{}, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Create(_ context.Context, u model.Usuario) (model.Usuario, error) {
	f.byUsername[u.Username] = u
	return u, nil
}

func (f *fakeUsers) Update(_ context.Context, id string, p model.UsuarioPatch) (model.Usuario, error) {
	return model.Usuario{}, store.ErrNotFound
}

func (f *fakeUsers) Delete(context.Context, string) error { return nil }

func authTestHandler(t *testing.T) *AuthHandler {
	t.Helper()
	hash, err := utils.HashPassword("s3nh4", 4)
	if err != nil {
		t.Fatal(err)
	}
	users := &fakeUsers{byUsername: map[string]model.Usuario{
		"ana": {ID: "u1", Name: "ANA", Username: "ana", Tier: model.TierAdmin, PasswordHash: hash},
	}}
	cfg := config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	return NewAuthHandler(cfg, users, store.NewMemoryTokens())
}

func postJSON(t *testing.T, fn echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := fn(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestLoginSuccess(t *testing.T) {
	h := authTestHandler(t)
	rec := postJSON(t, h.Login, "/v1/auth/login", `{"username":"  ANA ","password":"s3nh4"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out authResp
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Access.Token == "" || out.Refresh.Token == "" {
		t.Fatal("missing tokens in response")
	}
	if out.User.Tier != model.TierAdmin {
		t.Fatalf("tier = %q", out.User.Tier)
	}
}

func TestLoginBadPassword(t *testing.T) {
	h := authTestHandler(t)
	rec := postJSON(t, h.Login, "/v1/auth/login", `{"username":"ana","password":"errada"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	h := authTestHandler(t)
	rec := postJSON(t, h.Login, "/v1/auth/login", `{"username":"ana","password":"s3nh4"}`)
	var first authResp
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatal(err)
	}

	rec = postJSON(t, h.Refresh, "/v1/auth/refresh", `{"refresh_token":"`+first.Refresh.Token+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body %s", rec.Code, rec.Body.String())
	}

	// The old refresh token is revoked after rotation.
	rec = postJSON(t, h.Refresh, "/v1/auth/refresh", `{"refresh_token":"`+first.Refresh.Token+`"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reused refresh status = %d, want 401", rec.Code)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	h := authTestHandler(t)
	rec := postJSON(t, h.Login, "/v1/auth/login", `{"username":"ana","password":"s3nh4"}`)
	var resp authResp
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	rec = postJSON(t, h.Logout, "/v1/auth/logout", `{"refresh_token":"`+resp.Refresh.Token+`"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rec.Code)
	}
	rec = postJSON(t, h.Refresh, "/v1/auth/refresh", `{"refresh_token":"`+resp.Refresh.Token+`"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after logout = %d, want 401", rec.Code)
	}
}
