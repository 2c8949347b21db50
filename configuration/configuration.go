package configuration

type Configuration struct {
	File       string `usage:"database file"`
	Journal    bool   `usage:"append every mutation to <file>.journal"`
	LogLevel   string `usage:"log level: debug | info | warn | error"`
	LogFormat  string `usage:"log format: console | json"`
	Query      string `usage:"print records matching a JSON filter and exit, example: {\"city\":\"Oslo\"}"`
	Stats      bool   `usage:"print statistics and exit"`
	NoColor    bool   `usage:"disable colored output"`
	Version    bool   `usage:"show version and exit"`
	ShowBanner bool   `usage:"show big banner"`
	ShowConfig bool   `usage:"print config"`
}
