package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/mercado-api/mercado-backend/internal/auth"
	"github.com/mercado-api/mercado-backend/internal/cart"
	"github.com/mercado-api/mercado-backend/internal/category"
	"github.com/mercado-api/mercado-backend/internal/config"
	"github.com/mercado-api/mercado-backend/internal/middleware"
	"github.com/mercado-api/mercado-backend/internal/order"
	"github.com/mercado-api/mercado-backend/internal/product"
	"github.com/mercado-api/mercado-backend/internal/user"
	"github.com/mercado-api/mercado-backend/internal/usertype"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := openDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowOrigins}))
	app.Use(middleware.RequestLogger())

	userService := user.NewService(user.NewPostgresRepository(db))
	productService := product.NewService(product.NewPostgresRepository(db))
	categoryService := category.NewService(category.NewPostgresRepository(db))
	usertypeService := usertype.NewService(usertype.NewPostgresRepository(db))
	cartService := cart.NewService(cart.NewPostgresRepository(db))
	orderService := order.NewService(order.NewPostgresRepository(db), productService)

	user.NewHandler(userService, cfg.SecretKey, cfg.TokenTTL).RegisterPublicRoutes(app)
	category.NewHandler(categoryService).RegisterPublicRoutes(app)
	usertype.NewHandler(usertypeService).RegisterPublicRoutes(app)
	cart.NewHandler(cartService, userService, productService).RegisterPublicRoutes(app)
	order.NewHandler(orderService).RegisterPublicRoutes(app)

	productHandler := product.NewHandler(productService)
	productHandler.RegisterPublicRoutes(app)
	productHandler.RegisterProtectedRoutes(app, auth.Middleware(cfg.SecretKey))

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func openDB(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ensureSchema creates the tables on first start. Statements are idempotent.
func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			nombre TEXT NOT NULL,
			direccion TEXT,
			avatar TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS tipo_usuario (
			id SERIAL PRIMARY KEY,
			nombre TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS categorias (
			id SERIAL PRIMARY KEY,
			nombre TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS productos (
			id SERIAL PRIMARY KEY,
			titulo TEXT NOT NULL,
			descripcion TEXT NOT NULL,
			precio NUMERIC(12,2) NOT NULL CHECK (precio >= 0),
			categoria_id INTEGER NOT NULL REFERENCES categorias(id),
			vendedor_id INTEGER NOT NULL REFERENCES usuarios(id),
			size TEXT,
			stock INTEGER,
			imagen TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS calificaciones (
			producto_id INTEGER NOT NULL REFERENCES productos(id) ON DELETE CASCADE,
			usuario_id INTEGER NOT NULL REFERENCES usuarios(id),
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			PRIMARY KEY (producto_id, usuario_id)
		)`,
		`CREATE TABLE IF NOT EXISTS carritos (
			id SERIAL PRIMARY KEY,
			usuario_id INTEGER NOT NULL UNIQUE REFERENCES usuarios(id)
		)`,
		`CREATE TABLE IF NOT EXISTS carrito_items (
			id SERIAL PRIMARY KEY,
			carrito_id INTEGER NOT NULL REFERENCES carritos(id) ON DELETE CASCADE,
			producto_id INTEGER NOT NULL REFERENCES productos(id),
			cantidad INTEGER NOT NULL CHECK (cantidad > 0)
		)`,
		`CREATE TABLE IF NOT EXISTS pedidos (
			id SERIAL PRIMARY KEY,
			usuario_id INTEGER NOT NULL REFERENCES usuarios(id),
			vendedor_id INTEGER NOT NULL REFERENCES usuarios(id),
			total NUMERIC(12,2) NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS pedido_items (
			id SERIAL PRIMARY KEY,
			pedido_id INTEGER NOT NULL REFERENCES pedidos(id) ON DELETE CASCADE,
			producto_id INTEGER NOT NULL REFERENCES productos(id),
			cantidad INTEGER NOT NULL CHECK (cantidad > 0),
			precio_unitario NUMERIC(12,2) NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
