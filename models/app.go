package models

import (
	"time"

	"gorm.io/gorm"
)

// App is a registered application: one stored deployment descriptor plus
// ownership metadata. The descriptor itself is immutable at runtime; it is
// only replaced wholesale when the owner pushes a new revision.
type App struct {
	ID     string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name   string `json:"name" gorm:"uniqueIndex;not null"`
	UserID string `json:"userId" gorm:"type:uuid;not null;index"`

	// Stored descriptor. SECRET env values inside are kept in their
	// encrypted EV[1:...] form and never leave the platform in clear.
	Spec AppSpec `json:"spec" gorm:"type:jsonb"`

	// Monotonic revision counter, bumped on every descriptor update
	SpecRevision int `json:"specRevision" gorm:"default:1"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	User        User         `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Deployments []Deployment `json:"deployments,omitempty" gorm:"foreignKey:AppID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for App model
func (App) TableName() string {
	return "apps"
}
