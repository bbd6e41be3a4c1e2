package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/domain"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/lib/logger/sl"
	"github.com/OussemaHarrabi/Nestify-new-real-estate/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPhoneTaken         = errors.New("phone already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidToken       = errors.New("invalid token")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserRepository — реляционное хранилище аккаунтов.
type UserRepository interface {
	Create(ctx context.Context, u domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, id uuid.UUID, update domain.UserUpdate) error
}

type Service struct {
	log      *slog.Logger
	repo     UserRepository
	tokenTTL time.Duration
	secret   string
}

func New(log *slog.Logger, repo UserRepository, tokenTTL time.Duration, secret string) *Service {
	return &Service{log: log, repo: repo, tokenTTL: tokenTTL, secret: secret}
}

// Claims — полезная нагрузка токена доступа.
type Claims struct {
	UserID uuid.UUID       `json:"uid"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// RegisterInput — данные регистрации.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register создаёт аккаунт: uuid генерируется здесь, пароль хранится
// только как bcrypt-хеш.
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	const op = "user.Service.Register"
	log := s.log.With(slog.String("op", op), slog.String("email", in.Email))

	if in.Name == "" || !emailRe.MatchString(in.Email) {
		return domain.User{}, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if !domain.ValidPhone(in.Phone) {
		return domain.User{}, fmt.Errorf("%s: invalid phone: %w", op, ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return domain.User{}, fmt.Errorf("%s: password too short: %w", op, ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	u := domain.User{
		ID:            uuid.New(),
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		PasswordHash:  string(hash),
		Role:          domain.RoleUser,
		Favorites:     []string{},
		SearchHistory: []string{},
		Active:        true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return domain.User{}, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		if errors.Is(err, repository.ErrPhoneTaken) {
			return domain.User{}, fmt.Errorf("%s: %w", op, ErrPhoneTaken)
		}
		log.Error("failed to create user", sl.Err(err))
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", u.ID.String()))
	return u, nil
}

// Login проверяет пароль и выдаёт токен доступа.
// Деактивированный аккаунт неотличим от неверных учётных данных.
func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	const op = "user.Service.Login"
	log := s.log.With(slog.String("op", op))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", domain.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if !u.Active {
		return "", domain.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.Warn("wrong password", slog.String("user_id", u.ID.String()))
		return "", domain.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.newToken(u)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now()
	u.LastLogin = &now
	if err := s.repo.Update(ctx, u.ID, domain.UserUpdate{LastLogin: &now}); err != nil {
		log.Warn("failed to record last login", sl.Err(err))
	}

	return token, u, nil
}

// ParseToken валидирует токен и возвращает его claims.
func (s *Service) ParseToken(tokenStr string) (Claims, error) {
	const op = "user.Service.ParseToken"

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims, nil
}

// GetByID — аккаунт по идентификатору.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const op = "user.Service.GetByID"

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ProfileUpdate — изменяемые поля профиля.
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	Coordinates *domain.GeoPoint
}

// UpdateProfile — частичное обновление профиля.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileUpdate) (domain.User, error) {
	const op = "user.Service.UpdateProfile"

	if in.Phone != nil && !domain.ValidPhone(*in.Phone) {
		return domain.User{}, fmt.Errorf("%s: invalid phone: %w", op, ErrInvalidInput)
	}

	update := domain.UserUpdate{
		Name:        in.Name,
		Phone:       in.Phone,
		Coordinates: in.Coordinates,
	}
	if err := s.repo.Update(ctx, id, update); err != nil {
		return domain.User{}, s.mapUpdateErr(op, err)
	}
	return s.GetByID(ctx, id)
}

// UpdatePreferences заменяет предпочтения целиком.
func (s *Service) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs domain.Preferences) (domain.User, error) {
	const op = "user.Service.UpdatePreferences"

	if err := s.repo.Update(ctx, id, domain.UserUpdate{Preferences: &prefs}); err != nil {
		return domain.User{}, s.mapUpdateErr(op, err)
	}
	return s.GetByID(ctx, id)
}

// ChangePassword меняет пароль после проверки старого.
func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	const op = "user.Service.ChangePassword"

	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%s: password too short: %w", op, ErrInvalidInput)
	}

	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Update(ctx, id, domain.UserUpdate{PasswordHash: lo.ToPtr(string(hash))}); err != nil {
		return s.mapUpdateErr(op, err)
	}

	s.log.Info("password changed", slog.String("user_id", id.String()))
	return nil
}

// Deactivate — мягкое удаление: аккаунт помечается неактивным, почта
// анонимизируется и освобождается для повторной регистрации.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	const op = "user.Service.Deactivate"

	anonymized := fmt.Sprintf("deleted+%s@nestify.invalid", id)
	update := domain.UserUpdate{
		Active: lo.ToPtr(false),
		Email:  &anonymized,
	}
	if err := s.repo.Update(ctx, id, update); err != nil {
		return s.mapUpdateErr(op, err)
	}

	s.log.Info("user deactivated", slog.String("user_id", id.String()))
	return nil
}

func (s *Service) newToken(u domain.User) (string, error) {
	claims := Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *Service) mapUpdateErr(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	case errors.Is(err, repository.ErrEmailTaken):
		return fmt.Errorf("%s: %w", op, ErrEmailTaken)
	case errors.Is(err, repository.ErrPhoneTaken):
		return fmt.Errorf("%s: %w", op, ErrPhoneTaken)
	}
	return fmt.Errorf("%s: %w", op, err)
}
