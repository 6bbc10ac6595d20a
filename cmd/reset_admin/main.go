// reset_admin elimina la cuenta con ADMIN_PHONE (si existe) y la recrea como super_admin
// con ADMIN_NAME y ADMIN_PASSWORD.
//
// Uso: go run ./cmd/reset_admin
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dropforge-api/internal/application/auth"
	"github.com/jhoicas/dropforge-api/internal/domain/entity"
	"github.com/jhoicas/dropforge-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dropforge-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Admin.Phone == "" || cfg.Admin.Password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_PHONE y ADMIN_PASSWORD son requeridos")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			fmt.Fprintf(os.Stderr, "Aplicar esquema: %v\n", err)
			os.Exit(1)
		}
	}

	users := postgres.NewUserRepository(pool)
	if err := users.DeleteByPhone(ctx, cfg.Admin.Phone); err != nil {
		fmt.Fprintf(os.Stderr, "Eliminar admin anterior: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(cfg.Admin.Password, bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash de password: %v\n", err)
		os.Exit(1)
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Name:         cfg.Admin.Name,
		Phone:        cfg.Admin.Phone,
		PasswordHash: hash,
		Role:         entity.RoleSuperAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		fmt.Fprintf(os.Stderr, "Crear super admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Super admin recreado: %s (%s)\n", admin.Name, admin.Phone)
}
