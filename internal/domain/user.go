package domain

import (
	"time"

	"gorm.io/datatypes"
)

// StatusNormal is the status assigned to every freshly created user.
const StatusNormal = "normal"

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:pass_word;not null"`
	Status       string    `json:"status" gorm:"not null;default:normal"`
	CreatedAt    time.Time `json:"createTime" gorm:"column:create_time"`
	UpdatedAt    time.Time `json:"updateTime" gorm:"column:update_time"`
}

// Device is one active login session. A row is inserted per login event
// and removed on logout or when the owning user is deleted.
type Device struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64          `json:"userId" gorm:"not null;index"`
	User      *User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Token     string         `json:"token" gorm:"not null"`
	Name      string         `json:"name,omitempty"`
	Client    datatypes.JSON `json:"client,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"createTime" gorm:"column:create_time"`
	UpdatedAt time.Time      `json:"updateTime" gorm:"column:update_time"`
}
