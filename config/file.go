package config

import (
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Settings is the optional TOML config file overlay. Everything has a
// working default so the file may be absent entirely.
type Settings struct {
	Web   WebSettings   `toml:"web"`
	Admin AdminSettings `toml:"admin"`
	Redis RedisSettings `toml:"redis"`

	// CredentialKey keys the credential digest. Operators should set
	// their own value; the default keeps digests deterministic but
	// well-known.
	CredentialKey string `toml:"credential_key"`
}

type WebSettings struct {
	Listen        string `toml:"listen"`
	Port          int    `toml:"port"`
	BasePath      string `toml:"base_path"`
	SessionSecret string `toml:"session_secret"`
	SessionMaxAge int    `toml:"session_max_age"` // seconds, 0 = session cookie
}

type AdminSettings struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type RedisSettings struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

var (
	settings     *Settings
	settingsOnce sync.Once
)

func defaultSettings() *Settings {
	return &Settings{
		Web: WebSettings{
			Listen:   "",
			Port:     8080,
			BasePath: "/",
		},
		Admin: AdminSettings{
			Username: "admin",
		},
	}
}

func configFilePath() string {
	if p := os.Getenv("BLOG_CONFIG"); p != "" {
		return p
	}
	return "blog.toml"
}

// GetSettings loads the config file once and falls back to defaults when
// the file is missing or malformed.
func GetSettings() *Settings {
	settingsOnce.Do(func() {
		settings = defaultSettings()
		data, err := os.ReadFile(configFilePath())
		if err != nil {
			return
		}
		if err := toml.Unmarshal(data, settings); err != nil {
			settings = defaultSettings()
		}
	})
	return settings
}

// GetCredentialKey returns the digest key, env taking precedence over the
// config file.
func GetCredentialKey() string {
	if key := os.Getenv("BLOG_CREDENTIAL_KEY"); key != "" {
		return key
	}
	if key := GetSettings().CredentialKey; key != "" {
		return key
	}
	return GetName()
}
