package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/teemow/workspace-mcp/internal/google"
)

// DefaultEnvFile is loaded when present and no other file is requested.
const DefaultEnvFile = ".env"

// Config holds the Google OAuth2 client registration and tokens.
type Config struct {
	ClientID     string `yaml:"client_id" envconfig:"CLIENT_ID" validate:"required"`
	ClientSecret string `yaml:"client_secret" envconfig:"CLIENT_SECRET" validate:"required"`
	RedirectURI  string `yaml:"redirect_uri" envconfig:"REDIRECT_URI" validate:"required,url"`
	RefreshToken string `yaml:"refresh_token" envconfig:"REFRESH_TOKEN"`
}

// LoadOptions selects the optional files consulted by Load.
type LoadOptions struct {
	// ConfigFile is a YAML file with the same keys as Config.
	ConfigFile string
	// EnvFile is a dotenv file. Variables already present in the
	// environment win over the file.
	EnvFile string
}

// Load builds a Config from the configured sources without validating it.
func Load(opts LoadOptions) (*Config, error) {
	cfg := &Config{}

	if opts.ConfigFile != "" {
		if err := loadYAML(opts.ConfigFile, cfg); err != nil {
			return nil, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		// The default file is optional; an explicitly requested one is not.
		if opts.EnvFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if err := overlayEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// overlayEnv copies set environment variables over cfg. envconfig would
// otherwise reset fields from the file to empty strings.
func overlayEnv(cfg *Config) error {
	var env Config
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&cfg.ClientID, env.ClientID},
		{&cfg.ClientSecret, env.ClientSecret},
		{&cfg.RedirectURI, env.RedirectURI},
		{&cfg.RefreshToken, env.RefreshToken},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// envNames maps struct fields to the environment variable that sets them.
var envNames = map[string]string{
	"ClientID":     "CLIENT_ID",
	"ClientSecret": "CLIENT_SECRET",
	"RedirectURI":  "REDIRECT_URI",
	"RefreshToken": "REFRESH_TOKEN",
}

// Validate reports every missing or malformed field as a single
// *google.ConfigurationError.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &google.ConfigurationError{Reason: err.Error()}
	}

	var missing, invalid []string
	for _, fe := range verrs {
		name := envNames[fe.StructField()]
		if fe.Tag() == "required" {
			missing = append(missing, name)
		} else {
			invalid = append(invalid, name)
		}
	}
	if len(missing) > 0 {
		return &google.ConfigurationError{Fields: missing}
	}
	return &google.ConfigurationError{Fields: invalid, Reason: "invalid value"}
}

// Credential converts the configuration into a provider credential.
func (c *Config) Credential() google.Credential {
	return google.Credential{
		ClientID:     strings.TrimSpace(c.ClientID),
		ClientSecret: strings.TrimSpace(c.ClientSecret),
		RedirectURI:  strings.TrimSpace(c.RedirectURI),
		RefreshToken: strings.TrimSpace(c.RefreshToken),
	}
}
