package deeplink

// Config holds router settings loaded from the environment.
type Config struct {
	GlobalParams []string `env:"DEEPLINK_GLOBAL_PARAMS" envSeparator:","`
	RoutesFile   string   `env:"DEEPLINK_ROUTES_FILE"`
	LogLevel     string   `env:"DEEPLINK_LOG_LEVEL" envDefault:"info"`
	LogFormat    string   `env:"DEEPLINK_LOG_FORMAT" envDefault:"text"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
	}
}
