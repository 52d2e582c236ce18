package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"email"`
	Username     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:varchar(128);not null" json:"-"`
	Confirmed    bool       `gorm:"not null" json:"confirmed"`
	RoleID       *uint      `gorm:"index" json:"role_id"`
	Role         *RoleModel `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	RealName     string     `gorm:"type:varchar(64)" json:"real_name"`
	Location     string     `gorm:"type:varchar(64)" json:"location"`
	AboutMe      string     `gorm:"type:text" json:"about_me"`
	AvatarURL    string     `gorm:"type:text" json:"avatar_url"`
	AvatarKey    string     `gorm:"type:text" json:"-"`
	MemberSince  time.Time  `json:"member_since"`
	LastSeen     time.Time  `json:"last_seen"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if u.MemberSince.IsZero() {
		u.MemberSince = now
	}
	if u.LastSeen.IsZero() {
		u.LastSeen = now
	}
	return nil
}

// FollowModel is a directed edge; a user always follows itself.
type FollowModel struct {
	FollowerID string    `gorm:"type:uuid;primaryKey" json:"follower_id"`
	FollowedID string    `gorm:"type:uuid;primaryKey;index" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (FollowModel) TableName() string {
	return "follows"
}
