package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL            string
	DatabaseName   string
	BaseURL        string
	Port           string
	SendgridAPIKey string
	SenderEmail    string
	YouTubeAPIKey  string
}

// New sets up all config related services
func New() *Config {
	// missing .env is fine, the platform injects env vars directly
	_ = godotenv.Load()

	logger, err := setLogger(os.Getenv("ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:            os.Getenv("DB_URI"),
		DatabaseName:   os.Getenv("DB_NAME"),
		BaseURL:        os.Getenv("BASE_URL"),
		Port:           os.Getenv("PORT"),
		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		SenderEmail:    os.Getenv("SENDER_EMAIL"),
		YouTubeAPIKey:  os.Getenv("YOUTUBE_API_KEY"),
	}
}

// ErrorStatus is a useful function that will log, write http headers and body
// for a given message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
