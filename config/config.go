package config

import (
	"os"

	"execution-bot/logging"
	"execution-bot/model"

	"github.com/joho/godotenv"
)

// Load loads the configuration from environment variables.
func Load() *model.Config {
	log := logging.GetLogger()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info("Info: .env file not found, relying on environment variables")
	}

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal("Error: DISCORD_TOKEN environment variable not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serviceName := os.Getenv("RENDER_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "discord-execution-bot"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	return &model.Config{
		BotToken:          token,
		Port:              port,
		ExternalURL:       os.Getenv("RENDER_EXTERNAL_URL"),
		RenderServiceName: serviceName,
		OnRender:          os.Getenv("RENDER") != "",
		DataDir:           dataDir,
	}
}
