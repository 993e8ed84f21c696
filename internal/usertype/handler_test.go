package usertype

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeApp(seed []UserType) *fiber.App {
	handler := NewHandler(NewService(NewInMemoryRepository(seed)))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	return app
}

func TestListUserTypes(t *testing.T) {
	app := makeApp([]UserType{{ID: 1, Nombre: "comprador"}, {ID: 2, Nombre: "vendedor"}})

	res, err := app.Test(httptest.NewRequest("GET", "/tipo-usuario", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "vendedor") {
		t.Fatalf("unexpected body: %s", string(b))
	}
}

func TestCreateUserType_MissingName400(t *testing.T) {
	app := makeApp(nil)

	req := httptest.NewRequest("POST", "/tipo-usuario", strings.NewReader(`{"nombre":""}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestCreateUserType(t *testing.T) {
	app := makeApp(nil)

	req := httptest.NewRequest("POST", "/tipo-usuario", strings.NewReader(`{"nombre":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "admin") {
		t.Fatalf("unexpected body: %s", string(b))
	}
}
