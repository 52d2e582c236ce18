package entity

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const DefaultAboutMe = "This user is lazy and left nothing behind."

const (
	gravatarSecureURL   = "https://secure.gravatar.com/avatar"
	gravatarInsecureURL = "http://www.gravatar.com/avatar"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar_url"`
	AvatarKey    string    `json:"-"`
	Confirmed    bool      `json:"confirmed"`
	RoleID       *uint     `json:"role_id,omitempty"`
	Role         *Role     `json:"role,omitempty"`
	RealName     string    `json:"real_name"`
	Location     string    `json:"location"`
	AboutMe      string    `json:"about_me"`
	MemberSince  time.Time `json:"member_since"`
	LastSeen     time.Time `json:"last_seen"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetPassword replaces the stored hash. The plaintext is never kept.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) VerifyPassword(plaintext string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

func (u *User) Can(p Permission) bool {
	return u != nil && u.Role.Can(p)
}

func (u *User) IsAdministrator() bool {
	return u.Can(PermissionAdmin)
}

// HasCustomAvatar reports whether the avatar was uploaded rather than derived.
func (u *User) HasCustomAvatar() bool {
	return u.AvatarKey != ""
}

// Gravatar derives the default avatar URL from the user's current email.
func (u *User) Gravatar(secure bool) string {
	return DefaultGravatar(u.Email, secure)
}

// Gravatar hashes the normalized email and builds the avatar URL against the
// secure or plain host.
func Gravatar(email string, secure bool, size int, def, rating string) string {
	base := gravatarInsecureURL
	if secure {
		base = gravatarSecureURL
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("%s/%s?s=%d&d=%s&r=%s", base, hex.EncodeToString(sum[:]), size, def, rating)
}

// DefaultGravatar uses the sizing the profile pages render with.
func DefaultGravatar(email string, secure bool) string {
	return Gravatar(email, secure, 40, "identicon", "g")
}

type Follow struct {
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// FollowCounts excludes the self-follow edge.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
