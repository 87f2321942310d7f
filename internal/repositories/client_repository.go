package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dress_rental_backend/internal/models"
)

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id string) (*models.Client, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	List(ctx context.Context, searchTerm *string) ([]models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id string) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, full_name, phone, email, address, city, state, postal_code, created_at, updated_at`

func scanClient(row scanner) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.FullName, &c.Phone, &c.Email, &c.Address, &c.City, &c.State,
		&c.PostalCode, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new client into the database.
func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	currentTime := time.Now()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = currentTime
	}
	client.UpdatedAt = currentTime

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		client.ID, client.FullName, client.Phone, client.Email, client.Address, client.City,
		client.State, client.PostalCode, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		return mapPQError(err, "creating client")
	}
	return nil
}

// GetByID retrieves a client by their ID.
func (r *clientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(executorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %s: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

// GetByEmail retrieves a client by email, case-insensitively.
func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE LOWER(email) = LOWER($1)`
	client, err := scanClient(executorFrom(ctx, r.db).QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by email %s: %v", ErrDatabaseError, email, err)
	}
	return client, nil
}

// List retrieves clients, optionally matching a search term against name, phone and email.
func (r *clientRepository) List(ctx context.Context, searchTerm *string) ([]models.Client, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + clientColumns + ` FROM clients`)

	var args []interface{}
	if searchTerm != nil && strings.TrimSpace(*searchTerm) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*searchTerm))+"%")
		queryBuilder.WriteString(" WHERE (LOWER(full_name) LIKE $1 OR phone LIKE $1 OR LOWER(email) LIKE $1)")
	}
	queryBuilder.WriteString(" ORDER BY full_name ASC")

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// Update updates an existing client in the database.
func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	query := `UPDATE clients SET
	            full_name = $1, phone = $2, email = $3, address = $4, city = $5,
	            state = $6, postal_code = $7, updated_at = $8
	          WHERE id = $9`

	client.UpdatedAt = time.Now()
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		client.FullName, client.Phone, client.Email, client.Address, client.City,
		client.State, client.PostalCode, client.UpdatedAt, client.ID,
	)
	if err != nil {
		return mapPQError(err, "updating client "+client.ID)
	}
	return checkAffected(result, "updating client "+client.ID)
}

// Delete removes a client from the database. Rentals keep their client snapshot.
func (r *clientRepository) Delete(ctx context.Context, id string) error {
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return mapPQError(err, "deleting client "+id)
	}
	return checkAffected(result, "deleting client "+id)
}
