// cmd/adduser/main.go
// Creates or updates a user in the database, bypassing the HTTP API.
//
// Usage:
//
//	go run ./cmd/adduser -username padraic -name "Padraic C" -password testing
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"fintrack/config"
	bundb "fintrack/db"
	"fintrack/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	name := flag.String("name", "", "display name (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	if *username == "" || *name == "" || *password == "" {
		log.Fatal("-username, -name and -password are all required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(context.Background(), db); err != nil {
		log.Fatal("create tables:", err)
	}

	user := &models.User{
		Username: *username,
		Name:     *name,
		Password: string(hash),
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE SET name = EXCLUDED.name, password = EXCLUDED.password").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert user:", err)
	}

	fmt.Printf("user %q saved\n", *username)
}
