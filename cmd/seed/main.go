// seed crea el esquema de la base de datos si no existe y carga los datos
// mínimos de arranque: una cuenta admin y un catálogo de demostración.
//
// Uso: go run ./cmd/seed
// Credenciales del admin vía SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD
// (por defecto admin@pinturas.local / admin123).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pinturas-b2b/internal/infrastructure/postgres"
	"github.com/tu-usuario/pinturas-b2b/pkg/config"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id               TEXT PRIMARY KEY,
		email            TEXT NOT NULL UNIQUE,
		full_name        TEXT NOT NULL DEFAULT '',
		tax_id           TEXT NOT NULL DEFAULT '',
		company_name     TEXT NOT NULL DEFAULT '',
		phone            TEXT NOT NULL DEFAULT '',
		password_hash    TEXT NOT NULL,
		role             TEXT NOT NULL DEFAULT 'buyer',
		company_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		price             NUMERIC(12,2) NOT NULL DEFAULT 0,
		category          TEXT NOT NULL DEFAULT '',
		description       TEXT NOT NULL DEFAULT '',
		image_path        TEXT NOT NULL DEFAULT '',
		shelf_life_months INTEGER NOT NULL DEFAULT 12,
		nomenclature      TEXT NOT NULL UNIQUE,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS batches (
		id          TEXT PRIMARY KEY,
		product_id  TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		color_code  TEXT NOT NULL DEFAULT '',
		quantity    INTEGER NOT NULL DEFAULT 0,
		produced_at TIMESTAMPTZ NOT NULL,
		analysis_id TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS analyses (
		id                     TEXT PRIMARY KEY,
		batch_id               TEXT NOT NULL UNIQUE REFERENCES batches(id) ON DELETE CASCADE,
		gloss                  DOUBLE PRECISION,
		viscosity              DOUBLE PRECISION,
		delta_e                DOUBLE PRECISION,
		delta_l                DOUBLE PRECISION,
		delta_a                DOUBLE PRECISION,
		delta_b                DOUBLE PRECISION,
		drying_time            DOUBLE PRECISION,
		peak_metal_temperature DOUBLE PRECISION,
		soil_thickness         DOUBLE PRECISION,
		adhesion               DOUBLE PRECISION,
		solvent_resistance     DOUBLE PRECISION,
		grinding_degree        DOUBLE PRECISION,
		solids_by_volume       DOUBLE PRECISION,
		ground_content         DOUBLE PRECISION,
		mass_fraction          DOUBLE PRECISION,
		sample_count           INTEGER,
		visual_control         TEXT,
		appearance             TEXT,
		created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at             TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS cart_entries (
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL,
		color_code TEXT NOT NULL DEFAULT '',
		batch_id   TEXT NOT NULL DEFAULT '',
		quantity   INTEGER NOT NULL DEFAULT 1,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, product_id, color_code, batch_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL REFERENCES users(id),
		status        TEXT NOT NULL DEFAULT 'pending_moderation',
		cancel_reason TEXT,
		shipment_date TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_production_items (
		order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL,
		color_code TEXT NOT NULL DEFAULT '',
		quantity   INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_stock_items (
		order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		batch_id TEXT NOT NULL,
		quantity INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chats (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		assistant_enabled BOOLEAN NOT NULL DEFAULT TRUE,
		agent_id          TEXT,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id         TEXT PRIMARY KEY,
		chat_id    TEXT NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
		role       TEXT NOT NULL,
		text       TEXT NOT NULL,
		read       BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_batches_product ON batches(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_chat ON chat_messages(chat_id)`,
}

// Catálogo de demostración: esmaltes y imprimaciones industriales.
var demoProducts = []struct {
	title, category, nomenclature string
	price                         string
	shelfLifeMonths               int
}{
	{"Esmalte poliuretano industrial", "esmaltes", "PE-21", "1450.00", 12},
	{"Imprimación epoxi anticorrosiva", "imprimaciones", "EP-05", "980.00", 18},
	{"Esmalte alquídico de secado rápido", "esmaltes", "AL-10", "760.00", 24},
	{"Recubrimiento en polvo epoxi-poliéster", "polvo", "PP-40", "520.00", 12},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			fail("crear esquema (sentencia %d): %v", i+1, err)
		}
	}
	fmt.Println("esquema verificado")

	adminEmail := envOr("SEED_ADMIN_EMAIL", "admin@pinturas.local")
	adminPassword := envOr("SEED_ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear password: %v", err)
	}

	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, full_name, password_hash, role, company_verified)
		VALUES ($1, $2, 'Administrador', $3, 'admin', true)
		ON CONFLICT (email) DO NOTHING`,
		uuid.New().String(), adminEmail, string(hash))
	if err != nil {
		fail("crear admin: %v", err)
	}
	if tag.RowsAffected() > 0 {
		fmt.Printf("admin creado: %s\n", adminEmail)
	} else {
		fmt.Printf("admin ya existe: %s\n", adminEmail)
	}

	for _, p := range demoProducts {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, title, price, category, nomenclature, shelf_life_months)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (nomenclature) DO NOTHING`,
			uuid.New().String(), p.title, p.price, p.category, p.nomenclature, p.shelfLifeMonths)
		if err != nil {
			fail("insertar producto %s: %v", p.nomenclature, err)
		}
	}
	fmt.Printf("catálogo de demostración: %d productos\n", len(demoProducts))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
