package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nikhilr05/civicreport/internal/services"
)

func newGatedApp(tokens *services.TokenManager) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AdminRequired(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"adminId": c.Locals("admin_id")})
	})
	return app
}

func TestMissingTokenReturns401(t *testing.T) {
	app := newGatedApp(services.NewTokenManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestMalformedTokenReturns403(t *testing.T) {
	app := newGatedApp(services.NewTokenManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}
}

func TestForeignSignedTokenReturns403(t *testing.T) {
	app := newGatedApp(services.NewTokenManager("test-secret", time.Hour))

	foreign := services.NewTokenManager("other-secret", time.Hour)
	token, err := foreign.Generate("admin01")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}
}

func TestValidTokenPasses(t *testing.T) {
	tokens := services.NewTokenManager("test-secret", time.Hour)
	app := newGatedApp(tokens)

	token, err := tokens.Generate("admin01")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
