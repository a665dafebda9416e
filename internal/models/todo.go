package models

import "gorm.io/gorm"

// Todo represents a single to-do item owned by a user.
type Todo struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID      string  `json:"userId" gorm:"index;type:varchar(36)" validate:"required"`
	Title       string  `json:"title" gorm:"type:varchar(255)" validate:"required,max=255"`
	Description string  `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Completed   bool    `json:"completed"`
	Date        string  `json:"date" gorm:"type:varchar(32)"`
	Time        string  `json:"time" gorm:"type:varchar(32)"`
	Remind      *string `json:"remind" gorm:"type:varchar(64)"` // nil means no reminder scheduled
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// TodoUpdate carries a partial update for a to-do. Nil fields are left
// untouched, except Remind, which is always written: omitting it clears
// the reminder.
type TodoUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Remind      *string `json:"remind"`
}
