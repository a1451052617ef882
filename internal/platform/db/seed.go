package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"carelink/internal/domain/auth"
	"carelink/internal/platform/config"
)

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	agencyID, err := ensureAgency(ctx, pool, cfg.SeedAgencyName)
	if err != nil {
		return err
	}
	return ensureAdminUser(ctx, pool, agencyID, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureAgency(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM agencies WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}

	err = pool.QueryRow(ctx, "INSERT INTO agencies (name) VALUES ($1) RETURNING id", name).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, agencyID, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE agency_id = $1 AND email = $2", agencyID, email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return pool.QueryRow(ctx, `
    INSERT INTO users (agency_id, email, password_hash, role, status)
    VALUES ($1, $2, $3, $4, 'Active')
    RETURNING id
  `, agencyID, email, hash, auth.RoleAdmin).Scan(&id)
}
