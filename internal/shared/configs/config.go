package configs

// Config holds all configuration for the application.
type Config struct {
	ReportSize int    `mapstructure:"report_size" validate:"min=0"`
	ReportDir  string `mapstructure:"report_dir" validate:"required"`
	LogDir     string `mapstructure:"log_dir" validate:"required"`
	LogPrefix  string `mapstructure:"log_prefix" validate:"required,filename"`

	Log     LogConfig     `mapstructure:"log" validate:"required"`
	Report  ReportConfig  `mapstructure:"report"`
	Parser  ParserConfig  `mapstructure:"parser"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,loglevel"`
	File  string `mapstructure:"file"` // empty means stdout
}

// ReportConfig holds report rendering configuration.
type ReportConfig struct {
	Template string `mapstructure:"template"` // empty means the embedded template
}

// ParserConfig holds log parsing configuration.
type ParserConfig struct {
	// ErrorThreshold is the highest tolerated malformed/total line ratio. Zero disables the check.
	ErrorThreshold float64 `mapstructure:"error_threshold" validate:"min=0,max=1"`
}

// MetricsConfig holds metrics export configuration.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// ServerConfig holds report server configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}
