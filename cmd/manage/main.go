// Command manage runs operator tasks against the recipe database.
//
//	manage [-c config.env] wait-for-db
//	manage [-c config.env] migrate
//	manage [-c config.env] create-superuser -email EMAIL -password PASSWORD [-name NAME]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sbilibin2017/recipe-api/internal/db"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

var errUsage = errors.New("usage: manage [-c config.env] <wait-for-db|migrate|create-superuser> [flags]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// execute parses the global flags, loads the database config and runs the
// named command.
func execute(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("manage", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	configPath := global.String("c", "config.env", "Path to configuration file")
	logLevel := global.String("log-level", "info", "Log level")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if global.NArg() == 0 {
		return errUsage
	}

	command, rest := global.Arg(0), global.Args()[1:]
	switch command {
	case "wait-for-db", "migrate", "create-superuser":
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}

	var su superuserFlags
	if command == "create-superuser" {
		var err error
		if su, err = parseSuperuserFlags(rest); err != nil {
			return err
		}
	}

	if err := logger.Initialize(*logLevel); err != nil {
		return err
	}
	defer logger.Log.Sync()

	cfg, err := loadDBConfig(*configPath)
	if err != nil {
		return err
	}

	conn, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	switch command {
	case "wait-for-db":
		fmt.Fprintln(out, "Database available!")
		return nil
	case "migrate":
		if err := db.Migrate(ctx, conn); err != nil {
			return err
		}
		fmt.Fprintln(out, "Migrations applied.")
		return nil
	default:
		auth := services.NewAuthService(
			repositories.NewUserReadRepository(conn, nil),
			repositories.NewUserWriteRepository(conn, nil),
			nil, nil,
		)
		user, err := auth.CreateSuperuser(ctx, su.email, su.password, su.name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Superuser %s created.\n", user.Email)
		return nil
	}
}

type superuserFlags struct {
	email    string
	password string
	name     string
}

func parseSuperuserFlags(args []string) (superuserFlags, error) {
	var f superuserFlags
	fs := flag.NewFlagSet("create-superuser", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.email, "email", "", "Superuser email")
	fs.StringVar(&f.password, "password", "", "Superuser password")
	fs.StringVar(&f.name, "name", "Admin", "Superuser display name")
	if err := fs.Parse(args); err != nil {
		return f, fmt.Errorf("create-superuser: %w", err)
	}
	if f.email == "" || f.password == "" {
		return f, errors.New("create-superuser: -email and -password are required")
	}
	return f, nil
}

// loadDBConfig reads the POSTGRES_* settings the server uses.
func loadDBConfig(path string) (db.Config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	cfg := db.Config{
		Host:     getEnv("POSTGRES_HOST", "localhost"),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		User:     getEnv("POSTGRES_USER", "user"),
		Password: getEnv("POSTGRES_PASSWORD", "password"),
		Name:     getEnv("POSTGRES_DB", "database"),
	}

	attempts, err := strconv.Atoi(getEnv("POSTGRES_WAIT_ATTEMPTS", "30"))
	if err != nil {
		return cfg, fmt.Errorf("POSTGRES_WAIT_ATTEMPTS: %w", err)
	}
	intervalMS, err := strconv.Atoi(getEnv("POSTGRES_WAIT_INTERVAL_MS", "1000"))
	if err != nil {
		return cfg, fmt.Errorf("POSTGRES_WAIT_INTERVAL_MS: %w", err)
	}
	cfg.WaitAttempts = attempts
	cfg.WaitInterval = time.Duration(intervalMS) * time.Millisecond
	return cfg, nil
}
