package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func requestWithRole(role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role != "" {
		req = req.WithContext(context.WithValue(req.Context(), UserRoleKey, role))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	c, _ := requestWithRole("receptionist")
	called := false
	h := RequireRole("receptionist", "doctor")(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Error("next handler not called")
	}
}

func TestRequireRoleAdminOverride(t *testing.T) {
	c, _ := requestWithRole("admin")
	called := false
	h := RequireRole("doctor")(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Error("admin was not allowed through")
	}
}

func TestRequireRoleForbidsOthers(t *testing.T) {
	c, _ := requestWithRole("receptionist")
	h := RequireRole("doctor")(func(c echo.Context) error { return nil })
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequireRoleNoIdentity(t *testing.T) {
	c, _ := requestWithRole("")
	h := RequireRole("doctor")(func(c echo.Context) error { return nil })
	if err := h(c); err == nil {
		t.Fatal("expected error without identity")
	}
}
