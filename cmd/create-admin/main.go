// create-admin заводит пользователя админки из командной строки:
//
//	create-admin -username boss -password 's3cret-pass' [-role editor]
package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"studio-site/internal/database"
	"studio-site/internal/logging"
	"studio-site/internal/models"
)

func main() {
	username := flag.String("username", "", "login of the new user")
	password := flag.String("password", "", "password, at least 8 characters")
	role := flag.String("role", string(models.RoleAdmin), "admin or editor")
	flag.Parse()

	logging.Init(logging.Config{Format: "console"})
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logging.Fatal().Msg("DB_DSN is not set")
	}
	if *username == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	db, err := database.Open(dsn)
	if err != nil {
		logging.Fatal().Err(err).Msg("database unavailable")
	}
	if err := database.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}

	user, err := database.CreateUser(db, *username, *password, models.UserRole(*role))
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create user")
	}
	logging.Info().Uint("id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("user created")
}
