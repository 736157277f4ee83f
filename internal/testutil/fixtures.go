package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hywel/accountd/internal/auth"
	"github.com/hywel/accountd/internal/domain"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
	status   string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		status:   domain.StatusNormal,
	}
}

// WithName sets the user name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(b.password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Name:         b.name,
		Email:        b.email,
		PasswordHash: hash,
		Status:       b.status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// DeviceBuilder creates test device rows with a builder pattern
type DeviceBuilder struct {
	user  *domain.User
	token string
	name  string
}

// NewDeviceBuilder creates a new DeviceBuilder for the given user
func NewDeviceBuilder(user *domain.User) *DeviceBuilder {
	return &DeviceBuilder{
		user:  user,
		token: fmt.Sprintf("token_%s", uuid.New().String()),
	}
}

// WithToken sets the token
func (b *DeviceBuilder) WithToken(token string) *DeviceBuilder {
	b.token = token
	return b
}

// WithName sets the device name
func (b *DeviceBuilder) WithName(name string) *DeviceBuilder {
	b.name = name
	return b
}

// Build creates the device row in the database
func (b *DeviceBuilder) Build(t *testing.T, db *gorm.DB) *domain.Device {
	t.Helper()

	device := &domain.Device{
		UserID:    b.user.ID,
		Token:     b.token,
		Name:      b.name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := db.Create(device).Error; err != nil {
		t.Fatalf("failed to create device: %v", err)
	}

	return device
}
