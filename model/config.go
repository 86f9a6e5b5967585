package model

// Config holds the application configuration derived from the environment.
type Config struct {
	BotToken          string
	Port              string
	ExternalURL       string
	RenderServiceName string
	OnRender          bool
	DataDir           string
}
