package product

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
)

// bootstrapAuth injects a jwt.Token into locals when the X-User-ID header is
// provided, standing in for the real bearer middleware.
func bootstrapAuth(c *fiber.Ctx) error {
	v := c.Get("X-User-ID")
	if v == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Acceso denegado. Token no proporcionado."})
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Token inválido o expirado"})
	}
	c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"id": id}})
	return c.Next()
}

func seedProducts(n int) []Product {
	out := make([]Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Product{
			ID:          i,
			Titulo:      "Producto " + strconv.Itoa(i),
			Descripcion: "desc",
			Precio:      decimal.NewFromInt(int64(i * 1000)),
			CategoriaID: 1 + i%2,
			VendedorID:  1 + i%3,
		})
	}
	return out
}

func makeApp(seed []Product) (*fiber.App, *InMemoryRepository) {
	repo := NewInMemoryRepository(seed)
	handler := NewHandler(NewService(repo))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	handler.RegisterProtectedRoutes(app, bootstrapAuth)
	return app, repo
}

func TestListProducts_PageAndTotal(t *testing.T) {
	app, _ := makeApp(seedProducts(25))

	res, err := app.Test(httptest.NewRequest("GET", "/productos?limit=10&page=1", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body ListResponse
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("decode: %v (%s)", err, string(b))
	}
	if body.Total != 25 {
		t.Fatalf("total must be the unfiltered count, got %d", body.Total)
	}
	if len(body.Data) != 10 {
		t.Fatalf("expected 10 items, got %d", len(body.Data))
	}
	if len(body.Data[0].Links) != 1 || body.Data[0].Links[0].Rel != "self" {
		t.Fatalf("missing self link: %+v", body.Data[0])
	}
	if body.Data[0].Links[0].Href != "/productos/"+strconv.Itoa(body.Data[0].ID) {
		t.Fatalf("self link must point at the product: %+v", body.Data[0].Links)
	}
}

func TestListProducts_SmallCatalog(t *testing.T) {
	app, _ := makeApp(seedProducts(3))

	res, _ := app.Test(httptest.NewRequest("GET", "/productos?limit=10&page=1", nil))
	var body ListResponse
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 3 || body.Total != 3 {
		t.Fatalf("expected min(10,total)=3 items and total 3, got %d/%d", len(body.Data), body.Total)
	}
}

func TestListProducts_BadPagination400(t *testing.T) {
	app, _ := makeApp(seedProducts(3))

	for _, target := range []string{
		"/productos?limit=0",
		"/productos?page=0",
		"/productos?limit=abc",
		"/productos?order_by=precio;DROP",
	} {
		res, err := app.Test(httptest.NewRequest("GET", target, nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if res.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, res.StatusCode)
		}
	}
}

func TestListProducts_OrderByPrecioDesc(t *testing.T) {
	app, _ := makeApp(seedProducts(5))

	res, _ := app.Test(httptest.NewRequest("GET", "/productos?limit=5&page=1&order_by=precio_DESC", nil))
	var body ListResponse
	b, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data[0].ID != 5 {
		t.Fatalf("expected most expensive first, got id %d", body.Data[0].ID)
	}
}

func TestCreateProduct_EchoesFields(t *testing.T) {
	app, _ := makeApp(nil)

	payload := `{"titulo":"Silla","descripcion":"Silla de madera","precio":19990,"categoria_id":3,"vendedor_id":8}`
	req := httptest.NewRequest("POST", "/productos", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201, got %d: %s", res.StatusCode, string(b))
	}
	b, _ := io.ReadAll(res.Body)
	for _, want := range []string{"Silla", "Silla de madera", `"categoria_id":3`, `"vendedor_id":8`} {
		if !strings.Contains(string(b), want) {
			t.Fatalf("response missing %q: %s", want, string(b))
		}
	}
}

func TestCreateProduct_EachMissingField400(t *testing.T) {
	app, _ := makeApp(nil)

	full := map[string]any{
		"titulo": "Silla", "descripcion": "d", "precio": 100, "categoria_id": 1, "vendedor_id": 2,
	}
	for field := range full {
		partial := map[string]any{}
		for k, v := range full {
			if k != field {
				partial[k] = v
			}
		}
		body, _ := json.Marshal(partial)
		req := httptest.NewRequest("POST", "/productos", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if res.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("omitting %s: expected 400, got %d", field, res.StatusCode)
		}
	}
}

func TestGetUpdateDeleteProduct(t *testing.T) {
	app, _ := makeApp(seedProducts(2))

	res, _ := app.Test(httptest.NewRequest("GET", "/productos/1", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	res, _ = app.Test(httptest.NewRequest("GET", "/productos/99", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("PUT", "/productos/1", strings.NewReader(`{"titulo":"Renombrado"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on update, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Renombrado") || !strings.Contains(string(b), "desc") {
		t.Fatalf("partial update lost fields: %s", string(b))
	}

	res, _ = app.Test(httptest.NewRequest("DELETE", "/productos/1", nil))
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}
	res, _ = app.Test(httptest.NewRequest("DELETE", "/productos/1", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", res.StatusCode)
	}
}

func TestRate_RequiresAuth(t *testing.T) {
	app, _ := makeApp(seedProducts(1))

	req := httptest.NewRequest("POST", "/productos/1/calificar", strings.NewReader(`{"rating":4}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}
}

func TestRate_BoundsAndUpsert(t *testing.T) {
	app, repo := makeApp(seedProducts(1))

	rate := func(value string) int {
		req := httptest.NewRequest("POST", "/productos/1/calificar", strings.NewReader(`{"rating":`+value+`}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "7")
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		return res.StatusCode
	}

	if got := rate("0"); got != fiber.StatusBadRequest {
		t.Fatalf("rating 0: expected 400, got %d", got)
	}
	if got := rate("6"); got != fiber.StatusBadRequest {
		t.Fatalf("rating 6: expected 400, got %d", got)
	}

	if got := rate("4"); got != fiber.StatusCreated {
		t.Fatalf("rating 4: expected 201, got %d", got)
	}
	if got := rate("2"); got != fiber.StatusCreated {
		t.Fatalf("second rating: expected 201, got %d", got)
	}
	if v, ok := repo.RatingFor(1, 7); !ok || v != 2 {
		t.Fatalf("second rating must overwrite the first, got %d/%v", v, ok)
	}
}
