// main.go - Admin control tool for the portfolio site
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/pariz/gountries"
	"golang.org/x/term"

	"portfolio/internal"
	"portfolio/internal/contacts"
	"portfolio/internal/education"
	"portfolio/internal/experiences"
	"portfolio/internal/projects"
	"portfolio/internal/seeder"
	"portfolio/internal/skills"
	"portfolio/internal/users"
)

const (
	defaultShutdownTimeout = 30 * time.Second
)

// Command defines the interface for all command implementations
type Command interface {
	// Name returns the command name
	Name() string
	// Description returns the command description
	Description() string
	// Execute runs the command with the given app and args
	Execute(ctx context.Context, app *internal.Application, args []string) error
}

// The set of available commands
var commands = []Command{
	&CreateAdminUserCommand{},
	&ChangeAdminPasswordCommand{},
	&MigrateCommand{},
	&SeedCommand{},
	&StatusCommand{},
	&MessagesCommand{},
	&DeleteMessageCommand{},
	&HelpCommand{},
}

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v, initiating cleanup...", sig)
		cancel()
	}()

	cmdName, args := parseArgs(os.Args[1:])

	cmd := findCommand(cmdName)
	if cmd == nil {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	var app *internal.Application
	if _, isHelp := cmd.(*HelpCommand); !isHelp {
		var err error
		app, err = internal.NewApp()
		if err != nil {
			log.Fatalf("Failed to initialize app: %v", err)
		}
	}

	err := cmd.Execute(ctx, app, args)

	if app != nil {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		if shutdownErr := app.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Printf("Warning: Cleanup error: %v", shutdownErr)
		}
		cancelShutdown()
	}

	if err != nil {
		log.Fatalf("Command failed: %v", err)
	}
	log.Printf("Command %s completed successfully", cmd.Name())
}

// CreateAdminUserCommand creates an admin account
type CreateAdminUserCommand struct{}

func (c *CreateAdminUserCommand) Name() string        { return "create-admin-user" }
func (c *CreateAdminUserCommand) Description() string { return "Creates an admin user" }

// Execute implements the create-admin-user command. The password is
// prompted for when it is not given as an argument.
func (c *CreateAdminUserCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %s <email> [password]", c.Name())
	}
	email := args[0]

	password := ""
	if len(args) >= 2 {
		password = args[1]
	} else {
		var err error
		if password, err = promptNewPassword(); err != nil {
			return err
		}
	}

	log.Printf("Setting up admin user with email: %s", email)

	if err := users.CreateAdminUser(app.DBManager.GetConnection(), email, password); err != nil {
		if errors.Is(err, users.ErrUserExists) {
			log.Printf("User %s already exists", email)
			return nil
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// ChangeAdminPasswordCommand implements password update for existing admin user
type ChangeAdminPasswordCommand struct{}

func (c *ChangeAdminPasswordCommand) Name() string { return "change-admin-password" }
func (c *ChangeAdminPasswordCommand) Description() string {
	return "Changes the password of an existing admin user"
}

func (c *ChangeAdminPasswordCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	var email string
	if len(args) >= 1 {
		email = args[0]
	} else {
		fmt.Print("Enter admin email: ")
		input, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		email = strings.TrimSpace(input)
	}
	if email == "" {
		return fmt.Errorf("email is required")
	}

	db := app.DBManager.GetConnection()
	if _, err := users.FindByEmail(db, email); err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}

	var newPassword string
	if len(args) >= 2 {
		newPassword = args[1]
	} else {
		var err error
		if newPassword, err = promptNewPassword(); err != nil {
			return err
		}
	}

	if err := users.ChangePassword(db, email, newPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	fmt.Println("Password updated successfully")
	return nil
}

// MigrateCommand runs database migrations
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string        { return "migrate" }
func (c *MigrateCommand) Description() string { return "Runs database migrations" }

func (c *MigrateCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	log.Println("Running database migrations...")
	if err := app.DBManager.MigrateDatabase(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Println("Migrations completed successfully")
	return nil
}

// SeedCommand creates the admin user and sample content
type SeedCommand struct{}

func (c *SeedCommand) Name() string { return "seed" }
func (c *SeedCommand) Description() string {
	return "Creates the admin user and sample content in empty tables"
}

func (c *SeedCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	email := fs.String("email", app.Config.AdminEmail, "admin email")
	password := fs.String("password", app.Config.AdminPassword, "admin password")
	file := fs.String("file", "", "YAML file with seed content (built-in sample when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := app.DBManager.MigrateDatabase(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	data, err := loadSeedData(*file)
	if err != nil {
		return err
	}

	report, err := seeder.NewSeeder(app.DBManager, app.Logger).Run(*email, *password, data)
	if err != nil {
		return err
	}

	fmt.Printf("Profile created: %t\n", report.ProfileCreated)
	fmt.Printf("Projects: %d, Skills: %d, Experiences: %d, Education: %d\n",
		report.Projects, report.Skills, report.Experiences, report.Education)
	return nil
}

func loadSeedData(path string) (*seeder.Data, error) {
	if path == "" {
		return seeder.DefaultData()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return seeder.ParseData(raw)
}

// StatusCommand implements a command to check the system status
type StatusCommand struct{}

func (c *StatusCommand) Name() string        { return "status" }
func (c *StatusCommand) Description() string { return "Shows database status and row counts" }

func (c *StatusCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	db := app.DBManager.GetConnection()

	counts := []struct {
		label string
		count func() (int64, error)
	}{
		{"Users", func() (int64, error) { return users.Count(db) }},
		{"Projects", func() (int64, error) { return projects.Count(db) }},
		{"Skills", func() (int64, error) { return skills.Count(db) }},
		{"Experiences", func() (int64, error) { return experiences.Count(db) }},
		{"Education", func() (int64, error) { return education.Count(db) }},
		{"Messages", func() (int64, error) { return contacts.Count(db) }},
		{"Unread messages", func() (int64, error) { return contacts.CountUnread(db) }},
	}

	log.Println("System Status:")
	log.Printf("- Database: Connected (%s)", app.Config.DatabaseType)
	for _, c := range counts {
		n, err := c.count()
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		log.Printf("- %s: %d", c.label, n)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get SQL DB: %w", err)
	}
	stats := sqlDB.Stats()
	log.Printf("- Max Open Connections: %d", stats.MaxOpenConnections)
	log.Printf("- Open Connections: %d", stats.OpenConnections)
	log.Printf("- In Use: %d", stats.InUse)
	log.Printf("- Idle: %d", stats.Idle)
	return nil
}

// MessagesCommand lists contact form submissions
type MessagesCommand struct{}

func (c *MessagesCommand) Name() string        { return "messages" }
func (c *MessagesCommand) Description() string { return "Lists contact messages, newest first" }

func (c *MessagesCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	rows, err := contacts.List(app.DBManager.GetConnection())
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}
	writeMessages(os.Stdout, rows)
	return nil
}

func writeMessages(w io.Writer, rows []contacts.Contact) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No messages")
		return
	}

	countries := gountries.New()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECEIVED\tFROM\tCOUNTRY\tSUBJECT\tREAD")
	for _, m := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s <%s>\t%s\t%s\t%t\n",
			m.ID, m.CreatedAt.Format("2006-01-02 15:04"), m.Name, m.Email,
			countryName(countries, m.Country), m.Subject, m.Read)
	}
	tw.Flush()
}

// countryName resolves an ISO alpha-2 code to its common English name.
func countryName(countries *gountries.Query, code string) string {
	if code == "" {
		return "-"
	}
	country, err := countries.FindCountryByAlpha(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	return country.Name.Common
}

// DeleteMessageCommand removes one contact message after confirmation
type DeleteMessageCommand struct{}

func (c *DeleteMessageCommand) Name() string        { return "delete-message" }
func (c *DeleteMessageCommand) Description() string { return "Deletes a contact message" }

func (c *DeleteMessageCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %s <id> [--yes]", c.Name())
	}
	id := args[0]
	db := app.DBManager.GetConnection()

	msg, err := contacts.Find(db, id)
	if err != nil {
		return fmt.Errorf("message lookup failed: %w", err)
	}

	skipPrompt := len(args) >= 2 && args[1] == "--yes"
	if !skipPrompt {
		question := fmt.Sprintf("Delete message from %s <%s>?", msg.Name, msg.Email)
		if !confirm(bufio.NewReader(os.Stdin), os.Stdout, question) {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := contacts.Delete(db, id); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	fmt.Println("Message deleted successfully")
	return nil
}

// HelpCommand implements a command to show usage information
type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Shows usage information" }

func (c *HelpCommand) Execute(ctx context.Context, app *internal.Application, args []string) error {
	printUsage(os.Stdout)
	return nil
}

// Helper functions

// parseArgs splits the command name from its arguments
func parseArgs(args []string) (string, []string) {
	if len(args) == 0 {
		return "help", []string{}
	}
	return args[0], args[1:]
}

// findCommand finds a command by name
func findCommand(name string) Command {
	for _, cmd := range commands {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: portfolioctl [command] [args...]")
	fmt.Fprintln(w, "Available commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %s: %s\n", cmd.Name(), cmd.Description())
	}
}

// confirm asks a y/N question. Anything but y or yes declines.
func confirm(r *bufio.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)
	answer, err := r.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// promptNewPassword reads a password twice without echo.
func promptNewPassword() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("password argument required when stdin is not a terminal")
	}

	fmt.Print("Enter new password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Print("Confirm new password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	password := strings.TrimSpace(string(first))
	if password != strings.TrimSpace(string(second)) {
		return "", fmt.Errorf("passwords do not match")
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
