package cart

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/mercado-api/mercado-backend/internal/product"
	"github.com/mercado-api/mercado-backend/internal/user"
)

func makeApp() (*fiber.App, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	users := user.NewService(user.NewInMemoryRepository([]user.User{{ID: 1, Email: "a@mail.com"}}))
	products := product.NewService(product.NewInMemoryRepository([]product.Product{
		{ID: 10, Titulo: "Taza", Descripcion: "d", Precio: decimal.NewFromInt(2990), CategoriaID: 1, VendedorID: 2},
	}))
	handler := NewHandler(NewService(repo), users, products)
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	return app, repo
}

func post(t *testing.T, app *fiber.App, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/carrito", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(b)
}

func TestAddToCart_MissingFields400(t *testing.T) {
	app, _ := makeApp()

	for _, body := range []string{
		`{}`,
		`{"usuario_id":1,"producto_id":10}`,
		`{"usuario_id":1,"producto_id":10,"cantidad":0}`,
		`{"usuario_id":1,"producto_id":10,"cantidad":-2}`,
	} {
		status, _ := post(t, app, body)
		if status != fiber.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, status)
		}
	}
}

func TestAddToCart_UnknownUserOrProduct404(t *testing.T) {
	app, _ := makeApp()

	status, body := post(t, app, `{"usuario_id":99,"producto_id":10,"cantidad":1}`)
	if status != fiber.StatusNotFound || !strings.Contains(body, "Usuario no encontrado") {
		t.Fatalf("expected 404 usuario, got %d: %s", status, body)
	}

	status, body = post(t, app, `{"usuario_id":1,"producto_id":99,"cantidad":1}`)
	if status != fiber.StatusNotFound || !strings.Contains(body, "Producto no encontrado") {
		t.Fatalf("expected 404 producto, got %d: %s", status, body)
	}
}

func TestAddToCart_LazyCartCreationAndReuse(t *testing.T) {
	app, repo := makeApp()

	// no cart exists up front
	if _, err := repo.GetByUser(1); err == nil {
		t.Fatalf("cart should not exist before first add")
	}

	status, body := post(t, app, `{"usuario_id":1,"producto_id":10,"cantidad":2}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}
	if !strings.Contains(body, `"cantidad":2`) {
		t.Fatalf("response missing cantidad: %s", body)
	}
	if strings.Contains(body, `"id"`) {
		t.Fatalf("sanitized item must not expose the row id: %s", body)
	}

	first, err := repo.GetByUser(1)
	if err != nil {
		t.Fatalf("cart should exist after first add: %v", err)
	}

	// second add reuses the same cart
	status, _ = post(t, app, `{"usuario_id":1,"producto_id":10,"cantidad":1}`)
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201 on second add, got %d", status)
	}
	second, _ := repo.GetByUser(1)
	if second.ID != first.ID {
		t.Fatalf("expected cart reuse, got %d then %d", first.ID, second.ID)
	}
	if items := repo.Items(); len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}
