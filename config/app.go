package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	Env         string `env:"APP_ENV" default:"dev"`
}

// Gateway is the config of the validating proxy binary.
type Gateway struct {
	Port       string `env:"GATEWAY_PORT" default:"8081"`
	BackendURL string `env:"SHAREIT_URL" default:"http://localhost:8080"`
	Env        string `env:"APP_ENV" default:"dev"`
}
