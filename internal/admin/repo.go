package admin

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Repository persists staff accounts in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const adminColumns = `id, username, name, email, role, password_hash, created_at, updated_at`

func scanAdmin(row interface{ Scan(...any) error }) (Admin, error) {
	var a Admin
	err := row.Scan(&a.ID, &a.Username, &a.Name, &a.Email, &a.Role, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// List returns all accounts ordered by name.
func (r *Repository) List(ctx context.Context) ([]Admin, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+adminColumns+` FROM admins ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Get returns an account by id.
func (r *Repository) Get(ctx context.Context, id string) (Admin, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+adminColumns+` FROM admins WHERE id = $1
	`, id)
	a, err := scanAdmin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	return a, err
}

// GetByUsername returns an account by username, nil when absent.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+adminColumns+` FROM admins WHERE username = $1
	`, username)
	a, err := scanAdmin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) emailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM admins WHERE email = $1`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return id != excludeID, nil
}

// Create inserts a new account, hashing the given plaintext password.
func (r *Repository) Create(ctx context.Context, a Admin, password string) (Admin, error) {
	if a.Username == "" || a.Name == "" || password == "" {
		return Admin{}, errors.New("username, name and password are required")
	}
	if existing, err := r.GetByUsername(ctx, a.Username); err != nil {
		return Admin{}, err
	} else if existing != nil {
		return Admin{}, ErrDuplicateUsername
	}
	if a.Email != "" {
		if taken, err := r.emailTaken(ctx, a.Email, ""); err != nil {
			return Admin{}, err
		} else if taken {
			return Admin{}, ErrDuplicateEmail
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Role == "" {
		a.Role = RoleViewer
	}
	if a.Role != RoleAdmin && a.Role != RoleViewer {
		return Admin{}, errors.New("role must be admin or viewer")
	}
	a.PasswordHash = string(hash)
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO admins (id, username, name, email, role, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at
	`, a.ID, a.Username, a.Name, a.Email, a.Role, a.PasswordHash)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		return Admin{}, err
	}
	return a, nil
}

// Update rewrites an account; password is rehashed only when non-empty.
func (r *Repository) Update(ctx context.Context, a Admin, password string) (Admin, error) {
	current, err := r.Get(ctx, a.ID)
	if err != nil {
		return Admin{}, err
	}
	if a.Username != current.Username {
		if existing, err := r.GetByUsername(ctx, a.Username); err != nil {
			return Admin{}, err
		} else if existing != nil {
			return Admin{}, ErrDuplicateUsername
		}
	}
	if a.Email != "" && a.Email != current.Email {
		if taken, err := r.emailTaken(ctx, a.Email, a.ID); err != nil {
			return Admin{}, err
		} else if taken {
			return Admin{}, ErrDuplicateEmail
		}
	}
	if a.Role == "" {
		a.Role = current.Role
	}
	if a.Role != RoleAdmin && a.Role != RoleViewer {
		return Admin{}, errors.New("role must be admin or viewer")
	}
	hash := current.PasswordHash
	if password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return Admin{}, err
		}
		hash = string(h)
	}
	row := r.db.QueryRowContext(ctx, `
		UPDATE admins
		SET username = $2, name = $3, email = $4, role = $5, password_hash = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING `+adminColumns+`
	`, a.ID, a.Username, a.Name, a.Email, a.Role, hash)
	updated, err := scanAdmin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Admin{}, ErrNotFound
	}
	return updated, err
}

// Delete removes an account.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Authenticate verifies username and password, returning the account.
func (r *Repository) Authenticate(ctx context.Context, username, password string) (Admin, error) {
	account, err := r.GetByUsername(ctx, username)
	if err != nil {
		return Admin{}, err
	}
	if account == nil {
		return Admin{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return Admin{}, ErrInvalidCredentials
	}
	return *account, nil
}

// EnsureDefaultAdmin creates the bootstrap "admin" account when no accounts
// exist yet, so a fresh install is reachable.
func (r *Repository) EnsureDefaultAdmin(ctx context.Context, password string) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	_, err := r.Create(ctx, Admin{
		Username: "admin",
		Name:     "System Administrator",
		Email:    "admin@example.com",
		Role:     RoleAdmin,
	}, password)
	if err == nil {
		log.Println("created default admin account")
	}
	return err
}

// SaveRefreshToken stores a refresh token for rotation checks.
func (r *Repository) SaveRefreshToken(ctx context.Context, accountID, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (account_id, token, expires_at)
		VALUES ($1, $2, $3)
	`, accountID, token, expiresAt)
	return err
}

// RefreshTokenValid reports whether a token is stored, unexpired and unrevoked.
func (r *Repository) RefreshTokenValid(ctx context.Context, token string) (bool, error) {
	var revoked bool
	var expiresAt time.Time
	err := r.db.QueryRowContext(ctx, `
		SELECT revoked, expires_at FROM refresh_tokens WHERE token = $1
	`, token).Scan(&revoked, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !revoked && time.Now().Before(expiresAt), nil
}

// RevokeRefreshToken marks a token revoked.
func (r *Repository) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	return err
}
