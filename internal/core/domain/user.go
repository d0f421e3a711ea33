package domain

import "time"

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Password     string    `db:"password"` // bcrypt hashed
	MainLocation string    `db:"main_location"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func NewUser(username, hashedPassword, mainLocation string) *User {
	now := time.Now()
	return &User{
		Username:     username,
		Password:     hashedPassword,
		MainLocation: mainLocation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
