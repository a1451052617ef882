package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateCaregiver(ctx context.Context, agencyID string, payload Caregiver) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO caregivers (agency_id, first_name, last_name, email, phone, status, classification,
                            certifications, driver_license, background_check_date, background_check_renewal_due, orientation_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id
  `, agencyID, payload.FirstName, payload.LastName, payload.Email, payload.Phone,
		payload.Status, payload.Classification, payload.Certifications, payload.DriverLicense,
		payload.BackgroundCheckDate, payload.BackgroundCheckRenewalDue, payload.OrientationDate).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetCaregiver(ctx context.Context, agencyID, caregiverID string) (*Caregiver, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, agency_id, first_name, last_name, email, COALESCE(phone, ''), status, classification,
           COALESCE(certifications, '{}'), driver_license,
           background_check_date, background_check_renewal_due, orientation_date,
           created_at, updated_at
    FROM caregivers
    WHERE agency_id = $1 AND id = $2
  `, agencyID, caregiverID)

	var cg Caregiver
	err := row.Scan(&cg.ID, &cg.AgencyID, &cg.FirstName, &cg.LastName, &cg.Email, &cg.Phone,
		&cg.Status, &cg.Classification, &cg.Certifications, &cg.DriverLicense,
		&cg.BackgroundCheckDate, &cg.BackgroundCheckRenewalDue, &cg.OrientationDate,
		&cg.CreatedAt, &cg.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cg, nil
}

func (s *Store) ListCaregivers(ctx context.Context, agencyID, status string) ([]Caregiver, error) {
	query := `
    SELECT id, agency_id, first_name, last_name, email, COALESCE(phone, ''), status, classification,
           COALESCE(certifications, '{}'), driver_license,
           background_check_date, background_check_renewal_due, orientation_date,
           created_at, updated_at
    FROM caregivers
    WHERE agency_id = $1
  `
	args := []any{agencyID}
	if status != "" {
		query += " AND status = $2"
		args = append(args, status)
	}
	query += " ORDER BY last_name, first_name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var caregivers []Caregiver
	for rows.Next() {
		var cg Caregiver
		if err := rows.Scan(&cg.ID, &cg.AgencyID, &cg.FirstName, &cg.LastName, &cg.Email, &cg.Phone,
			&cg.Status, &cg.Classification, &cg.Certifications, &cg.DriverLicense,
			&cg.BackgroundCheckDate, &cg.BackgroundCheckRenewalDue, &cg.OrientationDate,
			&cg.CreatedAt, &cg.UpdatedAt); err != nil {
			return nil, err
		}
		caregivers = append(caregivers, cg)
	}
	return caregivers, nil
}

// ListActiveCaregivers is the matcher's candidate pool.
func (s *Store) ListActiveCaregivers(ctx context.Context, agencyID string) ([]Caregiver, error) {
	return s.ListCaregivers(ctx, agencyID, StatusActive)
}

func (s *Store) CreateClient(ctx context.Context, agencyID string, payload Client) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO clients (agency_id, first_name, last_name, classification, can_self_direct, address, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, agencyID, payload.FirstName, payload.LastName, payload.Classification,
		payload.CanSelfDirect, payload.Address, payload.Status).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) GetClient(ctx context.Context, agencyID, clientID string) (*Client, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, agency_id, first_name, last_name, classification, can_self_direct,
           COALESCE(address, ''), status, created_at
    FROM clients
    WHERE agency_id = $1 AND id = $2
  `, agencyID, clientID)

	var cl Client
	err := row.Scan(&cl.ID, &cl.AgencyID, &cl.FirstName, &cl.LastName, &cl.Classification,
		&cl.CanSelfDirect, &cl.Address, &cl.Status, &cl.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cl, nil
}

func (s *Store) ListClients(ctx context.Context, agencyID string) ([]Client, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, agency_id, first_name, last_name, classification, can_self_direct,
           COALESCE(address, ''), status, created_at
    FROM clients
    WHERE agency_id = $1
    ORDER BY last_name, first_name
  `, agencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var cl Client
		if err := rows.Scan(&cl.ID, &cl.AgencyID, &cl.FirstName, &cl.LastName, &cl.Classification,
			&cl.CanSelfDirect, &cl.Address, &cl.Status, &cl.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, cl)
	}
	return clients, nil
}

func (s *Store) CreateAssignment(ctx context.Context, agencyID string, payload Assignment) (string, error) {
	if payload.IsPrimary {
		if _, err := s.DB.Exec(ctx, `
      UPDATE client_assignments SET is_primary = false
      WHERE agency_id = $1 AND client_id = $2
    `, agencyID, payload.ClientID); err != nil {
			return "", err
		}
	}

	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO client_assignments (agency_id, client_id, caregiver_id, is_primary)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (client_id, caregiver_id) DO UPDATE SET is_primary = EXCLUDED.is_primary
    RETURNING id
  `, agencyID, payload.ClientID, payload.CaregiverID, payload.IsPrimary).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListClientAssignments(ctx context.Context, agencyID, clientID string) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, client_id, caregiver_id, is_primary, created_at
    FROM client_assignments
    WHERE agency_id = $1 AND client_id = $2
  `, agencyID, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.ClientID, &a.CaregiverID, &a.IsPrimary, &a.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, a)
	}
	return links, nil
}
