package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/arcadehub/portal/internal/portal/domain"
	"github.com/arcadehub/portal/internal/portal/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, identifier, password_hash, role, totp_secret, totp_enabled, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var r userRow
	err := row.Scan(&r.id, &r.identifier, &r.passwordHash, &r.role, &r.totpSecret, &r.totpEnabled, &r.createdAt, &r.updatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return r.toDomain(), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE identifier = ?`, identifier)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, identifier, password_hash, role, totp_secret, totp_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Identifier, u.PasswordHash, string(u.Role), u.TOTPSecret, u.TOTPEnabled, u.CreatedAt, u.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) (domain.User, error) {
	if patch.IsZero() {
		return r.GetUserByID(ctx, userID)
	}

	// COALESCE keeps the stored value when the patch field is NULL, which is
	// how nil pointer fields ride through the driver.
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			identifier    = COALESCE(?, identifier),
			password_hash = COALESCE(?, password_hash),
			role          = COALESCE(?, role),
			updated_at    = ?
		WHERE id = ?`,
		patch.Identifier, patch.PasswordHash, roleArg(patch.Role), time.Now().UTC(), userID,
	)
	if err != nil {
		return domain.User{}, mapConflict(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, err
	}
	if n == 0 {
		return domain.User{}, store.ErrNotFound
	}
	return r.GetUserByID(ctx, userID)
}

func roleArg(role *domain.Role) any {
	if role == nil {
		return nil
	}
	return string(*role)
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var ur userRow
		if err := rows.Scan(&ur.id, &ur.identifier, &ur.passwordHash, &ur.role, &ur.totpSecret, &ur.totpEnabled, &ur.createdAt, &ur.updatedAt); err != nil {
			return nil, err
		}
		users = append(users, ur.toDomain())
	}
	return users, rows.Err()
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *usersRepo) UpdateTOTPSecret(ctx context.Context, userID string, secret string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET totp_secret = ?, totp_enabled = NULL, updated_at = ? WHERE id = ?`,
		secret, time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *usersRepo) EnableTwoFactor(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET totp_enabled = ?, updated_at = ? WHERE id = ? AND totp_secret IS NOT NULL`,
		now, now, userID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *usersRepo) DisableTwoFactor(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET totp_secret = NULL, totp_enabled = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
