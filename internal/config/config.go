package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Server struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Debug       bool   `toml:"debug_mode"`
	UploadDir   string `toml:"upload_dir"`
	ExternalURL string `toml:"external_url"`
}

type Content struct {
	SqliteFile string `toml:"sqlite_file"`
}

// Rule allows roles to reach a set of paths. Rules are matched in order;
// the first path+method match decides.
type Rule struct {
	Name   string   `toml:"name"`
	Path   string   `toml:"path"`
	Method []string `toml:"method"`
	Allow  []string `toml:"allow"`
}

type Auth struct {
	SqliteFile     string `toml:"sqlite_file"`
	Token          string `toml:"token"`
	Expiration     string `toml:"expiration"`
	ResetTokenTTL  string `toml:"reset_token_ttl"`
	RootEmail      string `toml:"root_email"`
	RootPassword   string `toml:"root_password"`
	PasswordPepper string `toml:"password_pepper"`
	Rules          []Rule `toml:"rules"`
}

type Mail struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Sender   string `toml:"sender"`
}

type OAuthProvider struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

type Config struct {
	Server  Server                   `toml:"server"`
	Content Content                  `toml:"content_db"`
	Auth    Auth                     `toml:"auth"`
	Mail    Mail                     `toml:"mail"`
	OAuth   map[string]OAuthProvider `toml:"oauth"`
}

func New() (Config, error) {
	return FromFile("configs/server.toml")
}

func FromFile(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}

	if token := os.Getenv("AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}
	if pepper := os.Getenv("PASSWORD_PEPPER"); pepper != "" {
		cfg.Auth.PasswordPepper = pepper
	}
	if rootPassword := os.Getenv("ROOT_PASSWORD"); rootPassword != "" {
		cfg.Auth.RootPassword = rootPassword
	}
	if mailPassword := os.Getenv("MAIL_PASSWORD"); mailPassword != "" {
		cfg.Mail.Password = mailPassword
	}
	for name, provider := range cfg.OAuth {
		prefix := strings.ToUpper(name)
		if id := os.Getenv(prefix + "_CLIENT_ID"); id != "" {
			provider.ClientID = id
		}
		if secret := os.Getenv(prefix + "_CLIENT_SECRET"); secret != "" {
			provider.ClientSecret = secret
		}
		cfg.OAuth[name] = provider
	}
	return cfg, nil
}
