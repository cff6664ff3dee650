package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/culturabase/backend/internal/auth"
	"github.com/culturabase/backend/internal/config"
	"github.com/culturabase/backend/internal/models"
	"github.com/culturabase/backend/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// A .env file is optional, it only exists for development setups
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CULTURABASE_CONFIG"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	gin.SetMode(cfg.Server.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.Server.LogFormat == "" && gin.IsDebugging()) || cfg.Server.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create the directory the database lives in
	err = os.MkdirAll(filepath.Dir(cfg.DB.Path), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate all models
	err = models.Connect(cfg.DB.Path)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// The base URL is used to build absolute links in API responses
	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	authority := auth.New(cfg.Auth)

	r, err := router.Router(cfg, authority, baseURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
