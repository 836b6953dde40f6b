// Package model defines the data structures used throughout the application.
package model

// Access levels stored in the users table. Level 1 is a regular account,
// level 2 is an administrator.
const (
	AccessLevelUser  = 1
	AccessLevelAdmin = 2
)

// User represents a registered account.
//
// The password is stored as directly comparable text: authentication is an
// exact match against the stored value, and the bootstrap admin account
// ("admin"/"admin") depends on the literal being readable. The JSON tag
// drops it from API responses so it never leaves the process.
type User struct {
	ID          int64  `json:"id"          db:"id"`
	Username    string `json:"username"    db:"username"`
	Password    string `json:"-"           db:"password"`
	AccessLevel int    `json:"accessLevel" db:"access_level"`
}

// IsAdmin reports whether the user's stored access level is administrator.
func (u *User) IsAdmin() bool {
	return u.AccessLevel == AccessLevelAdmin
}
