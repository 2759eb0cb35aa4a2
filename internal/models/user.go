package models

import "time"

// User is the DB shape of a user. Roles are stored as a text array.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Email        string    `db:"email"`
	PhoneNumber  string    `db:"phone_number"`
	FullName     string    `db:"full_name"`
	IsActive     bool      `db:"is_active"`
	PANNumber    string    `db:"pan_card_number"`
	Roles        []string  `db:"roles"`
	CreatedAt    time.Time `db:"created_at"`
}
