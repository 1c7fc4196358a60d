package core

import (
	"context"
	"fmt"
	"strings"

	"accounting-backend/internal/apperr"
	"accounting-backend/internal/db"
)

type userService struct {
	store UserStore
}

// NewUserService constructs a UserService over store.
func NewUserService(store UserStore) UserService {
	return &userService{store: store}
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.store.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	if u == nil || !u.IsActive {
		return nil, apperr.NotFound("user %q not found", username)
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, userID int) (*User, error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user id=%d: %w", userID, err)
	}
	if u == nil {
		return nil, apperr.NotFound("user id=%d not found", userID)
	}
	return u, nil
}

func (s *userService) Create(ctx context.Context, u *User) (*User, error) {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return nil, apperr.Validation("kullanici_adi is required")
	}
	if u.PasswordHash == "" {
		return nil, apperr.Validation("password is required")
	}
	u.IsActive = true
	id, err := s.store.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", u.Username, describe(err))
	}
	u.ID = id
	return u, nil
}

type pgUserStore struct {
	db db.Gateway
}

// NewUserStore returns the PostgreSQL UserStore.
func NewUserStore(gw db.Gateway) UserStore {
	return &pgUserStore{db: gw}
}

const userColumns = `id, kullanici_adi, eposta, sifre_hash, adi_soyadi, aktif, kayit_tarihi`

func (s *pgUserStore) get(ctx context.Context, where string, arg any) (*User, error) {
	u := &User{}
	err := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM kullanici WHERE `+where+` LIMIT 1`, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (s *pgUserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.get(ctx, "kullanici_adi = $1", username)
}

func (s *pgUserStore) GetByID(ctx context.Context, id int) (*User, error) {
	return s.get(ctx, "id = $1", id)
}

func (s *pgUserStore) Create(ctx context.Context, u *User) (int, error) {
	return s.db.Insert(ctx, `
		INSERT INTO kullanici (kullanici_adi, eposta, sifre_hash, adi_soyadi, aktif)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.IsActive,
	)
}
