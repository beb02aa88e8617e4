package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for identities.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	RecordLogin(ctx context.Context, id int64, at time.Time, origin string) (User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash []byte) error
}

// Role is the capability class of an identity.
type Role string

const (
	// RoleParticipant may submit and review their own draws.
	RoleParticipant Role = "participant"
	// RoleAdmin runs rounds and reviews users.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleParticipant || r == RoleAdmin
}

// User represents a stored identity with authentication and key material.
type User struct {
	ID               int64
	Email            string
	PasswordHash     []byte
	TOTPSecret       string
	Postcode         string
	Firstname        string
	Lastname         string
	Phone            string
	DOB              string
	Role             Role
	PublicKey        []byte
	PrivateKey       []byte
	RegisteredAt     time.Time
	CurrentLogin     *time.Time
	LastLogin        *time.Time
	IPCurrent        string
	IPLast           string
	SuccessfulLogins int
}

// HasKeys reports whether both halves of the keypair are present.
func (u User) HasKeys() bool {
	return len(u.PublicKey) > 0 && len(u.PrivateKey) > 0
}

// Profile is the credential-free view of an identity.
type Profile struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Firstname        string     `json:"firstname"`
	Lastname         string     `json:"lastname"`
	Phone            string     `json:"phone"`
	DOB              string     `json:"dob"`
	Role             Role       `json:"role"`
	RegisteredAt     time.Time  `json:"registered_at"`
	CurrentLogin     *time.Time `json:"current_login,omitempty"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	IPCurrent        string     `json:"ip_current,omitempty"`
	IPLast           string     `json:"ip_last,omitempty"`
	SuccessfulLogins int        `json:"successful_logins"`
}

// Profile projects the user without secrets.
func (u User) Profile() Profile {
	return Profile{
		ID:               u.ID,
		Email:            u.Email,
		Firstname:        u.Firstname,
		Lastname:         u.Lastname,
		Phone:            u.Phone,
		DOB:              u.DOB,
		Role:             u.Role,
		RegisteredAt:     u.RegisteredAt,
		CurrentLogin:     u.CurrentLogin,
		LastLogin:        u.LastLogin,
		IPCurrent:        u.IPCurrent,
		IPLast:           u.IPLast,
		SuccessfulLogins: u.SuccessfulLogins,
	}
}

// RegistrationParams contains the fields submitted on registration.
type RegistrationParams struct {
	Email     string
	Password  string
	Firstname string
	Lastname  string
	Phone     string
	DOB       string
	Postcode  string
}

// Registration is the outcome of a successful registration.
type Registration struct {
	User            User
	EnrollmentToken string
}

// Enrollment carries the one-time 2FA provisioning data.
type Enrollment struct {
	Email string `json:"email"`
	URI   string `json:"uri"`
}

// Credentials are the four factors submitted on login.
type Credentials struct {
	Email    string
	Password string
	Postcode string
	TOTP     string
}

// Activity is the login telemetry of one identity.
type Activity struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	RegisteredAt     time.Time  `json:"registered_at"`
	CurrentLogin     *time.Time `json:"current_login,omitempty"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	IPCurrent        string     `json:"ip_current,omitempty"`
	IPLast           string     `json:"ip_last,omitempty"`
	SuccessfulLogins int        `json:"successful_logins"`
}

// Activity projects the login telemetry of u.
func (u User) Activity() Activity {
	return Activity{
		ID:               u.ID,
		Email:            u.Email,
		RegisteredAt:     u.RegisteredAt,
		CurrentLogin:     u.CurrentLogin,
		LastLogin:        u.LastLogin,
		IPCurrent:        u.IPCurrent,
		IPLast:           u.IPLast,
		SuccessfulLogins: u.SuccessfulLogins,
	}
}
