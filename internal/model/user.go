package model

// User represents a registered employee as persisted in the store
type User struct {
	UserID       int    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FirstName    string `gorm:"type:varchar(255)" json:"first_name"`
	LastName     string `gorm:"type:varchar(255)" json:"last_name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"password_hash"`
	RoleID       int    `gorm:"not null" json:"role_id"`
}

// UserWithRole is a user joined with its role name
type UserWithRole struct {
	User
	RoleName string `json:"role_name"`
}

// Identity is the authenticated caller as described by a verified token.
// The role is the uppercased claim and is trusted for the rest of the request.
type Identity struct {
	UserID int    `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
