package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/robalobadob/wordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-solver/internal/store"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game and solver over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default from config or PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	st, closeCache, err := openCache()
	if err != nil {
		return err
	}
	defer closeCache()

	v, err := loadVocabulary(st)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(store.NewMemoryStore(), v, httpserver.Config{
		JWTSecret:   cfg.Server.JWTSecret,
		DailySalt:   cfg.Server.DailySalt,
		MaxAttempts: cfg.MaxAttempts,
		TopN:        cfg.TopN,
		RateLimit:   rate.Limit(cfg.Server.RateLimit),
		RateBurst:   cfg.Server.RateBurst,
		Cache:       st,
	})
	if err != nil {
		return err
	}

	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	log.Info().Str("port", port).Int("words", v.Len()).Msg("go-solver listening")
	return srv.Start(":" + port)
}
