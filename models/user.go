package models

import "github.com/uptrace/bun"

// User is a registered API user with bcrypt-hashed password.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int    `bun:"id,pk,autoincrement" json:"id"`
	Username string `bun:"username,notnull,unique" json:"username"`
	Name     string `bun:"name,notnull" json:"name"`
	Password string `bun:"password,notnull" json:"-"`
}
