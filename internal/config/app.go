package config

type AppConfig struct {
	Name    string
	Env     string
	Port    string
	BaseURL string
	Debug   bool
	JSONLog bool
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}
