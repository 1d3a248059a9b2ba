// Package cli implements the one-shot maintenance commands.
package cli

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/satriadi/perpustakaan/internal/auth"
	"github.com/satriadi/perpustakaan/internal/catalog"
	"github.com/satriadi/perpustakaan/internal/config"
	"github.com/satriadi/perpustakaan/internal/database"
	"github.com/satriadi/perpustakaan/internal/database/books"
	"github.com/satriadi/perpustakaan/internal/database/users"
)

// CreateUserCommand registers a new account from the terminal.
type CreateUserCommand struct {
	Username     string
	FullName     string
	Password     string
	DatabasePath string
}

// NewCreateUserCommand creates a new CreateUserCommand.
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

// ParseFlags parses command line flags.
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username for the new account (required)")
	fs.StringVar(&cmd.FullName, "name", "", "Display name (defaults to the username)")
	fs.StringVar(&cmd.Password, "password", "", "Password (prompted interactively when omitted)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the application database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account that can log in to the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -username reader\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-user -username reader -name \"Avid Reader\" -db ./perpustakaan.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		fs.Usage()
		return fmt.Errorf("username is required")
	}

	return nil
}

// Run executes the create-user command.
func (cmd *CreateUserCommand) Run() error {
	password := cmd.Password
	if password == "" {
		var err error
		password, err = promptPassword()
		if err != nil {
			return err
		}
	}

	db, err := database.NewSilentDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	cfg := config.NewConfig()
	svc := catalog.NewService(
		users.NewRepository(db.DB),
		books.NewRepository(db.DB),
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
	)

	user, err := svc.CreateUser(cmd.Username, password, cmd.FullName)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %q (id %d)\n", user.Username, user.ID)
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(password), nil
}
