// Command seedadmin creates the initial superuser so a fresh deployment can
// log in. Idempotent: exits cleanly if the username is taken.
//
//	seedadmin -username admin -password <secret>
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/leaox77/Inventory-System-Backend/internal/config"
	"github.com/leaox77/Inventory-System-Backend/internal/infra"
	"github.com/leaox77/Inventory-System-Backend/internal/model"
	"github.com/leaox77/Inventory-System-Backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	username := flag.String("username", "admin", "nombre del superusuario")
	password := flag.String("password", "", "contrasena inicial")
	fullName := flag.String("full-name", "Administrador", "nombre completo")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("-password es obligatorio")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar configuracion")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL, cfg.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("conectar a la base de datos")
	}

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	if existing, err := users.FindByUsername(ctx, *username); err == nil && existing.ID != uuid.Nil {
		log.Info().Str("username", *username).Msg("el usuario ya existe, nada que hacer")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear contrasena")
	}

	admin := model.User{
		Username:     *username,
		PasswordHash: string(hash),
		FullName:     *fullName,
		Active:       true,
		Superuser:    true,
	}
	if err := users.Create(ctx, &admin); err != nil {
		log.Fatal().Err(err).Msg("crear superusuario")
	}
	log.Info().Str("username", *username).Str("id", admin.ID.String()).Msg("superusuario creado")
}
