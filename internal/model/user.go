package model

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// User is keyed by email; there is no surrogate id. Column names match the
// legacy database file and must not change.
//
// swagger:model User
type User struct {
	Email        string   `gorm:"column:email;primaryKey" json:"email"`
	Name         string   `gorm:"column:name" json:"name"`
	Role         UserRole `gorm:"column:role" json:"role"`
	PasswordHash string   `gorm:"column:password_hash" json:"-"`
}

func (User) TableName() string {
	return "users"
}
