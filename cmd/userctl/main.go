// Command userctl performs administrative maintenance on the user store.
// Its main job is seeding the first admin account: POST /users requires an
// admin caller, so the very first admin has to be created out of band.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/iudanet/usersvc/internal/crypto"
	"github.com/iudanet/usersvc/internal/models"
	"github.com/iudanet/usersvc/internal/server/storage/sqlite"
	"github.com/iudanet/usersvc/internal/validation"
)

func main() {
	dbPath := flag.String("d", "usersvc.db", "path to the SQLite database file")
	username := flag.String("u", "", "username of the admin account")
	email := flag.String("e", "", "email of the admin account")
	flag.Parse()

	if err := run(*dbPath, *username, *email); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath, username, email string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	ctx := context.Background()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open user storage: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Active:       true,
		Admin:        true,
		CreatedAt:    time.Now(),
	}

	if err := store.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	fmt.Printf("admin user %q created with id %d\n", user.Username, user.ID)
	return nil
}

// promptPassword reads the password twice from the terminal without echo.
func promptPassword() (string, error) {
	fd := int(syscall.Stdin)

	fmt.Print("Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}

	return string(first), nil
}
