// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"almacen/internal/core/id"
	"almacen/internal/infrastructure/storage/postgres"
	"almacen/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "admin"
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@almacen.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM sys_users WHERE username = $1`,
		adminUsername,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "username", adminUsername, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now().UTC()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO sys_users (
			id, username, email, password_hash, full_name, roles,
			is_active, is_admin, created_at, updated_at, version
		)
		VALUES ($1, $2, $3, $4, 'System Administrator', '{admin}', true, true, $5, $5, 1)
	`, userID, adminUsername, adminEmail, string(passwordHash), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created",
		"username", adminUsername,
		"user_id", userID,
	)

	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// 1. Currencies
	currencies := []struct {
		name          string
		isoCode       string
		symbol        string
		decimalPlaces int
		isBase        bool
	}{
		{"Peso cubano", "CUP", "$", 2, true},
		{"Dólar estadounidense", "USD", "US$", 2, false},
		{"Euro", "EUR", "€", 2, false},
	}

	for _, c := range currencies {
		currID := id.New()
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_currencies (
				id, code, name, iso_code, symbol,
				decimal_places, is_base, version, deletion_mark, is_folder
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 1, false, false)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, currID, c.isoCode, c.name, c.isoCode, c.symbol, c.decimalPlaces, c.isBase)
		if err != nil {
			log.Warnw("failed to seed currency", "name", c.name, "error", err)
		}
	}

	// 2. Dependencies (the central one receives all receptions)
	dependencies := []struct {
		code      string
		name      string
		address   string
		isCentral bool
	}{
		{"DEP-001", "Almacén Central", "Calle Principal 1", true},
		{"DEP-002", "Comedor", "Edificio A", false},
		{"DEP-003", "Enfermería", "Edificio B", false},
		{"DEP-004", "Mantenimiento", "Edificio C", false},
	}

	depIDs := make(map[string]id.ID)

	for _, d := range dependencies {
		depID := id.New()
		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_dependencies (id, code, name, address, is_central, version, deletion_mark, is_folder)
			VALUES ($1, $2, $3, $4, $5, 1, false, false)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, depID, d.code, d.name, d.address, d.isCentral)
		if err != nil {
			log.Warnw("failed to seed dependency", "name", d.name, "error", err)
			continue
		}
		if tag.RowsAffected() == 0 {
			if err := pool.Pool.QueryRow(ctx,
				`SELECT id FROM cat_dependencies WHERE code = $1 AND deletion_mark = FALSE`,
				d.code,
			).Scan(&depID); err != nil {
				log.Warnw("failed to fetch existing dependency", "code", d.code, "error", err)
				continue
			}
		}
		depIDs[d.code] = depID
	}

	// 3. Suppliers with one agreement and one annex each
	suppliers := []struct {
		code  string
		name  string
		taxID string
	}{
		{"PROV-001", "Distribuidora Alimentaria S.A.", "CU-100200300"},
		{"PROV-002", "Suministros Médicos del Caribe", "CU-400500600"},
	}

	for i, s := range suppliers {
		supID := id.New()
		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_suppliers (id, code, name, tax_id, active, version, deletion_mark, is_folder)
			VALUES ($1, $2, $3, $4, true, 1, false, false)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, supID, s.code, s.name, s.taxID)
		if err != nil {
			log.Warnw("failed to seed supplier", "name", s.name, "error", err)
			continue
		}
		if tag.RowsAffected() == 0 {
			if err := pool.Pool.QueryRow(ctx,
				`SELECT id FROM cat_suppliers WHERE code = $1 AND deletion_mark = FALSE`,
				s.code,
			).Scan(&supID); err != nil {
				continue
			}
		}

		agrID := id.New()
		agrCode := fmt.Sprintf("CONV-%03d", i+1)
		tag, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_agreements (id, code, name, supplier_id, start_date, version, deletion_mark, is_folder)
			VALUES ($1, $2, $3, $4, NOW(), 1, false, false)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, agrID, agrCode, "Convenio marco "+s.name, supID)
		if err != nil {
			log.Warnw("failed to seed agreement", "supplier", s.name, "error", err)
			continue
		}
		if tag.RowsAffected() == 0 {
			if err := pool.Pool.QueryRow(ctx,
				`SELECT id FROM cat_agreements WHERE code = $1 AND deletion_mark = FALSE`,
				agrCode,
			).Scan(&agrID); err != nil {
				continue
			}
		}

		annexID := id.New()
		annexCode := fmt.Sprintf("ANX-%03d", i+1)
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO cat_annexes (id, code, name, agreement_id, version, deletion_mark, is_folder)
			VALUES ($1, $2, $3, $4, 1, false, false)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, annexID, annexCode, "Anexo inicial", agrID)
		if err != nil {
			log.Warnw("failed to seed annex", "agreement", agrCode, "error", err)
		}
	}

	// 4. Products
	products := []struct {
		name string
		unit string
	}{
		{"Arroz (saco 25 kg)", "saco"},
		{"Aceite vegetal (caja 12 L)", "caja"},
		{"Detergente líquido 5L", "bidón"},
		{"Guantes de nitrilo (caja 100)", "caja"},
		{"Papel sanitario (paquete 12)", "paquete"},
	}

	for i, p := range products {
		prodID := id.New()
		code := fmt.Sprintf("PROD-%05d", i+1)
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, unit, version, deletion_mark, is_folder)
			VALUES ($1, $2, $3, $4, 1, false, false)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, prodID, code, p.name, p.unit)
		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}
