package core

import (
	"context"
	"time"
)

// User is an operator allowed to sign in (kullanici).
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"kullanici_adi"`
	Email        string    `json:"eposta"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"adi_soyadi"`
	IsActive     bool      `json:"aktif"`
	CreatedAt    time.Time `json:"kayit_tarihi"`
}

// UserStore persists users.
type UserStore interface {
	// GetByUsername returns nil, nil when no user has the name.
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	Create(ctx context.Context, u *User) (int, error)
}

// UserService provides user lookup and registration. Password hashing is
// the caller's concern; the service only stores hashes.
type UserService interface {
	// GetByUsername finds an active user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByID returns a user by primary key.
	GetByID(ctx context.Context, userID int) (*User, error)

	// Create registers a user whose PasswordHash is already set.
	Create(ctx context.Context, u *User) (*User, error)
}
