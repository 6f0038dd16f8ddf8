// Package main implements the create-superuser command, the CLI
// counterpart of registration: it creates an account with every
// privilege flag set.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pangpangeats/pangpangeats-api/internal/config"
	"github.com/pangpangeats/pangpangeats-api/internal/platform/logger"
	"github.com/pangpangeats/pangpangeats-api/internal/platform/postgres"
	"github.com/pangpangeats/pangpangeats-api/internal/service"
	"github.com/pangpangeats/pangpangeats-api/internal/service/auth"
)

func main() {
	phoneNumber := flag.String("phone", "", "phone number for the new superuser (9-11 digits)")
	name := flag.String("name", "", "display name (max 10 characters)")
	password := flag.String("password", "", "password for the new superuser")
	flag.Parse()

	if *phoneNumber == "" || *name == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	db, err := setupDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	verifier := auth.NewBcryptVerifier()
	userStore := postgres.NewPostgresUserStore(db, slogger)
	userService := service.NewUserService(userStore, verifier, auth.NewDefaultPasswordPolicy(), db, slogger)

	user, err := userService.CreateSuperuser(context.Background(), *phoneNumber, *name, *password)
	if err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}

	fmt.Printf("Superuser created: %s (%s)\n", user.Name, user.ID)
}
