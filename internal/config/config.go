package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Username / Password are the student portal credentials. Both can be
	// supplied (or overridden) via TARUMT_USERNAME / TARUMT_PASSWORD.
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`

	// AppSecret signs every request to the mobile service. Overridable via
	// TARUMT_APP_SECRET.
	AppSecret string `yaml:"app_secret" json:"app_secret"`

	// BaseURL is the mobile-service root, e.g. "https://app.tarc.edu.my/MobileService".
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Device identity reported at login.
	DeviceID    string `yaml:"device_id" json:"device_id"`
	DeviceModel string `yaml:"device_model" json:"device_model"`
	AppVersion  string `yaml:"app_version" json:"app_version"`
	Platform    string `yaml:"platform" json:"platform"`

	// Timezone is the IANA timezone all events are anchored in.
	Timezone string `yaml:"timezone" json:"timezone"`

	// UIDDomain is the suffix after '@' in generated event UIDs.
	UIDDomain string `yaml:"uid_domain" json:"uid_domain"`

	// OutputPath is where the generated ICS document is written.
	OutputPath string `yaml:"output" json:"output"`

	// LogPath is the rotating run log. Empty disables the file sink.
	LogPath string `yaml:"log" json:"log"`

	// RefreshCron is the regeneration schedule used in daemon mode.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// Strict aborts the whole class pipeline on the first malformed
	// session record. When false (default), bad sessions are skipped
	// with a warning.
	Strict bool `yaml:"strict" json:"strict"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "https://app.tarc.edu.my/MobileService",
		DeviceID:    "92542A7E-B31D-461F-8B1C-15215824E3F9",
		DeviceModel: "MacBook Air M4 24GB RAM 512GB ROM",
		AppVersion:  "2.0.19",
		Platform:    "ios",
		Timezone:    "Asia/Kuala_Lumpur",
		UIDDomain:   "timetable.local",
		OutputPath:  "timetable.ics",
		LogPath:     "timetable.log",
		RefreshCron: "0 6 * * *",
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.DeviceID == "" {
		c.DeviceID = def.DeviceID
	}
	if c.DeviceModel == "" {
		c.DeviceModel = def.DeviceModel
	}
	if c.AppVersion == "" {
		c.AppVersion = def.AppVersion
	}
	if c.Platform == "" {
		c.Platform = def.Platform
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.UIDDomain == "" {
		c.UIDDomain = def.UIDDomain
	}
	if c.OutputPath == "" {
		c.OutputPath = def.OutputPath
	}
	if c.RefreshCron == "" {
		c.RefreshCron = def.RefreshCron
	}
}

// ApplyEnv overlays credentials and the app secret from the environment.
// Environment values win over file values, matching the original dotenv
// workflow where CI injects secrets.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TARUMT_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("TARUMT_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv("TARUMT_APP_SECRET"); v != "" {
		c.AppSecret = v
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist: write a default config with 0600 perms
//     and return it (credentials still come from the environment).
//   - If the file exists: read YAML, normalize defaults, overlay env.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			cfg.ApplyEnv()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	cfg.ApplyEnv()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Writes atomically via a temp file + rename.
//   - Final file permissions are 0600 (the file may hold credentials).
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tarumtcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
