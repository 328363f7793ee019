// Package settings loads application settings for the CLI and web server.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LETTERPACK_SERVER_ADDR
const EnvPrefix = "LETTERPACK"

// Settings holds all application settings
type Settings struct {
	Server  ServerConfig
	Fonts   FontConfig
	Render  RenderConfig
	Log     LogConfig
	Storage StorageConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Addr           string
	MaxConnections int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadSize  int64
	DefaultLayout  string // layout served by the form: center or grid_4up
}

// FontConfig holds font resolution settings
type FontConfig struct {
	Regular string   // explicit regular font path or URL
	Bold    string   // explicit bold font path or URL
	Dirs    []string // directories probed before platform paths
}

// RenderConfig holds drawing settings
type RenderConfig struct {
	Backend    string // pdf, gopdf, record
	LayoutPath string // layout YAML, empty for built-in defaults
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StorageConfig holds the archive sink settings
type StorageConfig struct {
	Driver       string // "", local, s3
	Dir          string
	Bucket       string
	Prefix       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// Backends accepted by Render.Backend
var Backends = []string{"pdf", "gopdf", "record"}

// Load loads settings from a file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with LETTERPACK_ prefix (e.g., LETTERPACK_SERVER_ADDR)
// 2. the given file, or letterpack.{yaml,toml} in the working directory
// 3. Built-in defaults
//
// An explicit path that cannot be read is an error; a missing default file is not.
func Load(path string) (*Settings, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("letterpack")
		v.AddConfigPath(".")
		if home, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "letterpack"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	s := &Settings{
		Server: ServerConfig{
			Addr:           v.GetString("server.addr"),
			MaxConnections: v.GetInt("server.max_connections"),
			ReadTimeout:    v.GetDuration("server.read_timeout"),
			WriteTimeout:   v.GetDuration("server.write_timeout"),
			MaxUploadSize:  v.GetInt64("server.max_upload_size"),
			DefaultLayout:  v.GetString("server.default_layout"),
		},
		Fonts: FontConfig{
			Regular: v.GetString("fonts.regular"),
			Bold:    v.GetString("fonts.bold"),
			Dirs:    v.GetStringSlice("fonts.dirs"),
		},
		Render: RenderConfig{
			Backend:    v.GetString("render.backend"),
			LayoutPath: v.GetString("render.layout_path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Storage: StorageConfig{
			Driver:       v.GetString("storage.driver"),
			Dir:          v.GetString("storage.dir"),
			Bucket:       v.GetString("storage.bucket"),
			Prefix:       v.GetString("storage.prefix"),
			Region:       v.GetString("storage.region"),
			Endpoint:     v.GetString("storage.endpoint"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
		},
	}

	applyDefaults(s)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Default returns settings with every default applied
func Default() *Settings {
	s := &Settings{}
	applyDefaults(s)
	return s
}

// applyDefaults sets default values for any empty fields
func applyDefaults(s *Settings) {
	if s.Server.Addr == "" {
		s.Server.Addr = ":8080"
	}
	if s.Server.MaxConnections == 0 {
		s.Server.MaxConnections = 64
	}
	if s.Server.ReadTimeout == 0 {
		s.Server.ReadTimeout = 15 * time.Second
	}
	if s.Server.WriteTimeout == 0 {
		s.Server.WriteTimeout = 30 * time.Second
	}
	if s.Server.MaxUploadSize == 0 {
		s.Server.MaxUploadSize = 4 << 20 // 4MB
	}
	if s.Server.DefaultLayout == "" {
		s.Server.DefaultLayout = "center"
	}
	if s.Render.Backend == "" {
		s.Render.Backend = "pdf"
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
	if s.Log.Format == "" {
		s.Log.Format = "console"
	}
	if s.Log.Output == "" {
		s.Log.Output = "stderr"
	}
	if s.Storage.Driver == "local" && s.Storage.Dir == "" {
		s.Storage.Dir = "labels"
	}
	if s.Storage.Driver == "s3" && s.Storage.Region == "" {
		s.Storage.Region = "us-east-1"
	}
}

// Validate performs validation on the settings
func (s *Settings) Validate() error {
	if s.Server.MaxConnections < 0 {
		return fmt.Errorf("server.max_connections cannot be negative")
	}
	if s.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("server.max_upload_size must be positive")
	}
	switch s.Server.DefaultLayout {
	case "center", "grid_4up":
	default:
		return fmt.Errorf("server.default_layout must be center or grid_4up, got %q", s.Server.DefaultLayout)
	}
	if !validBackend(s.Render.Backend) {
		return fmt.Errorf("render.backend must be one of %s, got %q", strings.Join(Backends, ", "), s.Render.Backend)
	}

	switch s.Storage.Driver {
	case "":
	case "local":
		if s.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the local driver")
		}
	case "s3":
		if s.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for the s3 driver")
		}
		if (s.Storage.AccessKey == "") != (s.Storage.SecretKey == "") {
			return fmt.Errorf("storage.access_key and storage.secret_key must be set together")
		}
	default:
		return fmt.Errorf("storage.driver must be local or s3, got %q", s.Storage.Driver)
	}
	return nil
}

func validBackend(name string) bool {
	for _, b := range Backends {
		if b == name {
			return true
		}
	}
	return false
}
