package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/lseungyeop/portfolio-admin/theme"
)

// preview serves the derived site theme locally so color changes can be
// checked before saving. The theme is re-derived from a fresh config fetch
// on every request; nothing is cached across config updates.
func (c *cli) preview(args []string) error {
	address := fmt.Sprintf("0.0.0.0:%s", c.settings.PreviewPort)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	router.Get("/theme", func(w http.ResponseWriter, r *http.Request) {
		cfg := c.configs.Fetch(r.Context())
		derived := theme.Derive(&cfg)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(derived); err != nil {
			log.Error().Err(err).Msg("error writing theme response")
		}
	})

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		cfg := c.configs.Fetch(r.Context())
		derived := theme.Derive(&cfg)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := previewTemplate.Execute(w, derived); err != nil {
			log.Error().Err(err).Msg("error rendering preview page")
		}
	})

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errChannel := make(chan error)
	go func() {
		log.Info().Msgf("Theme preview on: http://localhost:%s", c.settings.PreviewPort)
		errChannel <- server.ListenAndServe()
	}()
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing preview server: %v", fatalErr)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Msgf("Error shutting down the preview server: %v", err)
	}
	return nil
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!doctype html>
<html>
<head><title>Theme preview</title></head>
<body style="background:{{.Background}};color:{{.Text}};font-family:sans-serif;padding:2rem">
  <h1>{{.MainTitle}}</h1>
  <p style="color:{{.SecondaryText}}">{{.SubTitle}}</p>
  <div style="display:flex;gap:1rem;margin-top:2rem">
    <div style="background:{{.Primary}};width:120px;height:80px;border:1px solid {{.Text}}">primary</div>
    <div style="background:{{.Secondary}};width:120px;height:80px">secondary</div>
    <div style="background:{{.Paper}};width:120px;height:80px">paper</div>
    <div style="background:{{.Nav}};width:120px;height:80px;border:1px dashed {{.SecondaryText}}">nav</div>
  </div>
</body>
</html>
`))
