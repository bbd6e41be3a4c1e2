package userrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewUserRepository(db *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

const userColumns = `
	user_id, name, email, phone, password_hash, role, verified,
	preferences, lat, lng, favorites, search_history,
	last_login, active, created_at, updated_at
`

// Create — вставляет новый аккаунт.
func (r *UserRepository) Create(ctx context.Context, u domain.User) error {
	const op = "UserRepository.Create"

	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return fmt.Errorf("%s: marshal preferences: %w", op, err)
	}

	var lat, lng *float64
	if u.Coordinates != nil {
		lat, lng = &u.Coordinates.Lat, &u.Coordinates.Lng
	}

	query := `
		INSERT INTO users (
			user_id, name, email, phone, password_hash, role, verified,
			preferences, lat, lng, favorites, search_history, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.db.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash,
		u.Role.String(), u.Verified, prefs, lat, lng,
		u.Favorites, u.SearchHistory, u.Active,
	)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return fmt.Errorf("%s: %w", op, repository.ErrEmailTaken)
		}
		if isUniqueViolation(err, "users_phone_key") {
			return fmt.Errorf("%s: %w", op, repository.ErrPhoneTaken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetByID — аккаунт по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const op = "UserRepository.GetByID"

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetByEmail — аккаунт по почте (для входа).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const op = "UserRepository.GetByEmail"

	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Update — частичное обновление аккаунта.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, update domain.UserUpdate) error {
	const op = "UserRepository.Update"

	setClauses := []string{}
	params := []interface{}{}
	paramCount := 1

	if update.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", paramCount))
		params = append(params, *update.Name)
		paramCount++
	}
	if update.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", paramCount))
		params = append(params, *update.Email)
		paramCount++
	}
	if update.Phone != nil {
		setClauses = append(setClauses, fmt.Sprintf("phone = $%d", paramCount))
		params = append(params, *update.Phone)
		paramCount++
	}
	if update.PasswordHash != nil {
		setClauses = append(setClauses, fmt.Sprintf("password_hash = $%d", paramCount))
		params = append(params, *update.PasswordHash)
		paramCount++
	}
	if update.Preferences != nil {
		prefs, err := json.Marshal(*update.Preferences)
		if err != nil {
			return fmt.Errorf("%s: marshal preferences: %w", op, err)
		}
		setClauses = append(setClauses, fmt.Sprintf("preferences = $%d", paramCount))
		params = append(params, prefs)
		paramCount++
	}
	if update.Coordinates != nil {
		setClauses = append(setClauses, fmt.Sprintf("lat = $%d", paramCount))
		params = append(params, update.Coordinates.Lat)
		paramCount++
		setClauses = append(setClauses, fmt.Sprintf("lng = $%d", paramCount))
		params = append(params, update.Coordinates.Lng)
		paramCount++
	}
	if update.Verified != nil {
		setClauses = append(setClauses, fmt.Sprintf("verified = $%d", paramCount))
		params = append(params, *update.Verified)
		paramCount++
	}
	if update.LastLogin != nil {
		setClauses = append(setClauses, fmt.Sprintf("last_login = $%d", paramCount))
		params = append(params, *update.LastLogin)
		paramCount++
	}
	if update.Active != nil {
		setClauses = append(setClauses, fmt.Sprintf("active = $%d", paramCount))
		params = append(params, *update.Active)
		paramCount++
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNoFieldsToUpdate)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE users SET %s WHERE user_id = $%d`, strings.Join(setClauses, ", "), paramCount)
	params = append(params, id)

	tag, err := r.db.Exec(ctx, query, params...)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return fmt.Errorf("%s: %w", op, repository.ErrEmailTaken)
		}
		if isUniqueViolation(err, "users_phone_key") {
			return fmt.Errorf("%s: %w", op, repository.ErrPhoneTaken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}
	return nil
}

// SaveFavorites сохраняет упорядоченный список избранного целиком
// (read-modify-write; гонки конкурентных переключений допустимы,
// побеждает последняя запись).
func (r *UserRepository) SaveFavorites(ctx context.Context, id uuid.UUID, favorites []string) error {
	const op = "UserRepository.SaveFavorites"

	tag, err := r.db.Exec(ctx,
		`UPDATE users SET favorites = $1, updated_at = NOW() WHERE user_id = $2`,
		favorites, id,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}
	return nil
}

// SaveSearchHistory сохраняет историю поиска целиком.
func (r *UserRepository) SaveSearchHistory(ctx context.Context, id uuid.UUID, history []string) error {
	const op = "UserRepository.SaveSearchHistory"

	tag, err := r.db.Exec(ctx,
		`UPDATE users SET search_history = $1, updated_at = NOW() WHERE user_id = $2`,
		history, id,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	var roleStr string
	var prefs []byte
	var lat, lng *float64

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.PasswordHash,
		&roleStr,
		&u.Verified,
		&prefs,
		&lat,
		&lng,
		&u.Favorites,
		&u.SearchHistory,
		&u.LastLogin,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.Role = domain.UserRole(roleStr)
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &u.Preferences); err != nil {
			return domain.User{}, fmt.Errorf("unmarshal preferences: %w", err)
		}
	}
	if lat != nil && lng != nil {
		u.Coordinates = &domain.GeoPoint{Lat: *lat, Lng: *lng}
	}
	return u, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}
