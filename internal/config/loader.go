package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rickgorman/devservices/internal/devservice"
)

const (
	// FileName is the project configuration file.
	FileName = "devservices.yaml"

	// EnvFileName is loaded into the environment before overrides are read.
	EnvFileName = ".env"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DEVSERVICES_"

	// DefaultKind is used when no db-kind is configured.
	DefaultKind = "oracle"
)

// builtinNetworks are engine networks that do not resolve container aliases.
var builtinNetworks = []string{"bridge", "default", "host", "none"}

// Config is the loaded project configuration.
type Config struct {
	// Dir is the directory the configuration was loaded from.
	Dir string `yaml:"-"`

	Kind        string      `yaml:"db-kind"`
	LaunchMode  string      `yaml:"launch-mode"`
	LogLevel    string      `yaml:"log-level"`
	DevServices DevServices `yaml:"devservices"`
}

// DevServices holds the dev-service settings for the datasource.
type DevServices struct {
	// Enabled defaults to true when unset.
	Enabled *bool `yaml:"enabled"`

	ImageName      string            `yaml:"image-name"`
	Username       string            `yaml:"username"`
	Password       string            `yaml:"password"`
	DatabaseName   string            `yaml:"db-name"`
	Port           int               `yaml:"port"`
	StartupTimeout time.Duration     `yaml:"startup-timeout"`
	ContainerEnv   map[string]string `yaml:"container-env"`
	Properties     map[string]string `yaml:"properties"`
	Volumes        map[string]string `yaml:"volumes"`
	SharedNetwork  bool              `yaml:"shared-network"`
	Network        string            `yaml:"network"`
	Reuse          bool              `yaml:"reuse"`
}

// Load reads the configuration from dir. A missing devservices.yaml or .env
// is not an error; defaults apply.
func Load(dir string) (*Config, error) {
	cfg := &Config{Dir: dir}

	if err := godotenv.Load(filepath.Join(dir, EnvFileName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", EnvFileName, err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", devservice.ErrInvalidConfig, FileName, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.Kind == "" {
		cfg.Kind = DefaultKind
	}

	return cfg, cfg.validate()
}

// LoadProject loads the configuration from the project root.
func LoadProject() (*Config, error) {
	root, err := ProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	return Load(root)
}

// Enabled reports whether dev services should start at all.
func (c *Config) Enabled() bool {
	return c.DevServices.Enabled == nil || *c.DevServices.Enabled
}

// StartRequest converts the settings into a provider request.
func (c *Config) StartRequest() (devservice.StartRequest, error) {
	mode, err := devservice.ParseLaunchMode(c.LaunchMode)
	if err != nil {
		return devservice.StartRequest{}, err
	}

	ds := c.DevServices
	return devservice.StartRequest{
		Username:       ds.Username,
		Password:       ds.Password,
		DatabaseName:   ds.DatabaseName,
		ImageName:      ds.ImageName,
		ContainerEnv:   ds.ContainerEnv,
		URLParams:      ds.Properties,
		Volumes:        c.volumes(),
		FixedPort:      ds.Port,
		LaunchMode:     mode,
		StartupTimeout: ds.StartupTimeout,
	}, nil
}

// Environment describes the launch for provider factories.
func (c *Config) Environment(engine devservice.Engine) devservice.Environment {
	return devservice.Environment{
		Engine:        engine,
		SharedNetwork: c.DevServices.SharedNetwork,
		NetworkName:   c.DevServices.Network,
		ReuseEnabled:  c.DevServices.Reuse,
	}
}

// volumes anchors relative bind sources ("./data", "../seed") at the project
// directory rather than the working directory.
func (c *Config) volumes() map[string]string {
	if len(c.DevServices.Volumes) == 0 {
		return c.DevServices.Volumes
	}

	volumes := make(map[string]string, len(c.DevServices.Volumes))
	for source, target := range c.DevServices.Volumes {
		if c.Dir != "" && strings.HasPrefix(source, ".") {
			source = filepath.Join(c.Dir, source)
		}
		volumes[source] = target
	}
	return volumes
}

func (c *Config) applyEnv() error {
	ds := &c.DevServices

	setString(&c.Kind, "DB_KIND")
	setString(&c.LaunchMode, "LAUNCH_MODE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&ds.ImageName, "IMAGE_NAME")
	setString(&ds.Username, "USERNAME")
	setString(&ds.Password, "PASSWORD")
	setString(&ds.DatabaseName, "DB_NAME")
	setString(&ds.Network, "NETWORK")

	if v, ok := lookup("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return invalidEnv("PORT", v, err)
		}
		ds.Port = port
	}

	if v, ok := lookup("STARTUP_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return invalidEnv("STARTUP_TIMEOUT", v, err)
		}
		ds.StartupTimeout = timeout
	}

	if v, ok := lookup("ENABLED"); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return invalidEnv("ENABLED", v, err)
		}
		ds.Enabled = &enabled
	}

	for key, target := range map[string]*bool{
		"SHARED_NETWORK": &ds.SharedNetwork,
		"REUSE":          &ds.Reuse,
	} {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return invalidEnv(key, v, err)
			}
			*target = b
		}
	}

	return nil
}

func (c *Config) validate() error {
	if c.DevServices.Port < 0 || c.DevServices.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", devservice.ErrInvalidConfig, c.DevServices.Port)
	}
	if c.DevServices.StartupTimeout < 0 {
		return fmt.Errorf("%w: negative startup timeout", devservice.ErrInvalidConfig)
	}
	if _, err := devservice.ParseLaunchMode(c.LaunchMode); err != nil {
		return err
	}
	if c.DevServices.SharedNetwork {
		for _, builtin := range builtinNetworks {
			if strings.EqualFold(c.DevServices.Network, builtin) {
				return fmt.Errorf("%w: shared network cannot be %q, its containers have no aliases",
					devservice.ErrInvalidConfig, c.DevServices.Network)
			}
		}
	}
	return nil
}

// lookup returns a non-empty DEVSERVICES_ variable.
func lookup(name string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(EnvPrefix + name))
	return v, v != ""
}

func setString(target *string, name string) {
	if v, ok := lookup(name); ok {
		*target = v
	}
}

func invalidEnv(name, value string, err error) error {
	return fmt.Errorf("%w: %s%s=%q: %v", devservice.ErrInvalidConfig, EnvPrefix, name, value, err)
}
