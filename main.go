package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lseungyeop/portfolio-admin/api"
	"github.com/lseungyeop/portfolio-admin/app"
	"github.com/lseungyeop/portfolio-admin/auth"
	"github.com/lseungyeop/portfolio-admin/config"
	"github.com/lseungyeop/portfolio-admin/credstore"
	"github.com/lseungyeop/portfolio-admin/services"
	"github.com/lseungyeop/portfolio-admin/store"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	if os.Getenv("DEBUG") == "" {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	c := config.New()
	settings := config.NewSettings(c)

	creds := credstore.New(settings.CredentialFile)
	notifier := app.NewNotifier(app.DefaultNotificationTTL)
	navigator := app.NewRouteRecorder()

	// The client reports 401/403 to the gate, and the gate verifies
	// credentials through the client, so the hook is bound late.
	var gate *auth.Gate
	client := api.NewClient(settings.APIBaseURL,
		api.WithTimeout(settings.HTTPTimeout),
		api.WithCredentials(creds),
		api.WithUnauthorizedHook(func(status int) {
			if gate != nil {
				gate.HandleUnauthorized(status)
			}
		}),
	)
	gate = auth.NewGate(creds, client, notifier, navigator)

	registry := store.NewSkillRegistry(client)
	projects := store.NewProjectRepo(client, registry)
	configs := store.NewConfigStore(client)
	host := services.NewImageHost(settings.ImgBBUploadURL, settings.ImgBBKey)

	cli := newCLI(settings, client, gate, registry, projects, configs, host, notifier, navigator)
	os.Exit(cli.run(os.Args[1:]))
}
