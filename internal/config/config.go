package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Log struct {
		Level string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
		BcryptCost      int
		// Users lists seeded accounts as "name:password:role", comma separated.
		Users string
	}
	Events struct {
		Capacity int
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// UserEntry is one account parsed from Auth.Users.
type UserEntry struct {
	Username string
	Password string
	Role     string
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv(".env")

	v := viper.New()
	v.SetEnvPrefix("BOOKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.path", "data/books.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 30)
	v.SetDefault("auth.bcryptcost", 10)
	v.SetDefault("auth.users", "")
	v.SetDefault("events.capacity", 5)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "book-exports")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate reports configuration the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth jwt secret is required (BOOKS_AUTH_JWTSECRET)")
	}
	users, err := c.UserEntries()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return fmt.Errorf("at least one user is required (BOOKS_AUTH_USERS)")
	}
	return nil
}

// UserEntries parses Auth.Users. Passwords may contain ':'; the role is the
// text after the last one.
func (c Config) UserEntries() ([]UserEntry, error) {
	var entries []UserEntry
	for _, raw := range strings.Split(c.Auth.Users, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		first := strings.Index(raw, ":")
		last := strings.LastIndex(raw, ":")
		if first <= 0 || last == first {
			return nil, fmt.Errorf("invalid user entry %q: expected name:password:role", raw)
		}
		entry := UserEntry{
			Username: raw[:first],
			Password: raw[first+1 : last],
			Role:     strings.ToLower(raw[last+1:]),
		}
		if entry.Password == "" || entry.Role == "" {
			return nil, fmt.Errorf("invalid user entry for %q: password and role are required", entry.Username)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func loadDotEnv(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
