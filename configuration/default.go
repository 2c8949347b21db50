package configuration

func Default() *Configuration {
	return &Configuration{
		File:       "database.json",
		Journal:    false,
		LogLevel:   "warn",
		LogFormat:  "console",
		ShowBanner: true,
	}
}
