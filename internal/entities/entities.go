package entities

import "time"

// User is an account that owns a private book catalog.
type User struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	FullName     string    `gorm:"size:256" json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Book is a single catalog record. IDs are assigned by the database on
// insert and are never reused within a user's catalog.
type Book struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	UserID    int    `gorm:"index;not null" json:"user_id"`
	Title     string `gorm:"index;size:512;not null" json:"title"`
	Author    string `gorm:"size:256" json:"author"`
	Genre     string `gorm:"size:100" json:"genre"`
	Publisher string `gorm:"size:256" json:"publisher"`
	Year      int    `json:"year"`
	Copies    int    `json:"copies"`
	ImagePath string `gorm:"size:1024" json:"image_path"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// AuditEvent records an account or catalog action for the activity log.
type AuditEvent struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	UserID    int       `gorm:"index" json:"user_id"`
	Action    string    `gorm:"size:50;index" json:"action"`
	Detail    string    `gorm:"size:512" json:"detail,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Audit actions recorded by the service.
const (
	AuditActionRegister       = "user.register"
	AuditActionLogin          = "user.login"
	AuditActionLogout         = "user.logout"
	AuditActionPasswordChange = "user.password_change"
	AuditActionBookAdd        = "book.add"
	AuditActionBookUpdate     = "book.update"
	AuditActionBookDelete     = "book.delete"
)
