package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the relay
type Config struct {
	// Server Configuration
	Environment  string `env:"ENV" envDefault:"development"`
	Port         string `env:"API_PORT" envDefault:"8080"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile      string `env:"LOG_FILE" envDefault:"./logs/relay.log"`
	LogRequests  bool   `env:"LOG_REQUESTS" envDefault:"false"`
	MaxBodyBytes int64  `env:"MAX_BODY_BYTES" envDefault:"65536"`

	// Bot verification
	TurnstileSecret    string `env:"TURNSTILE_SECRET,required"`
	TurnstileVerifyURL string `env:"TURNSTILE_VERIFY_URL" envDefault:"https://challenges.cloudflare.com/turnstile/v0/siteverify"`

	// Email delivery
	MailSendURL string `env:"MAIL_SEND_URL" envDefault:"https://api.mailchannels.net/tx/v1/send"`
	MailAPIKey  string `env:"MAIL_API_KEY"`
	ToEmail     string `env:"CONTACT_TO_EMAIL,required"`
	ToName      string `env:"CONTACT_TO_NAME"`
	FromEmail   string `env:"CONTACT_FROM_EMAIL,required"`
	FromName    string `env:"CONTACT_FROM_NAME" envDefault:"Portfolio Contact Form"`

	// Outbound calls share one timeout
	OutboundTimeout time.Duration `env:"OUTBOUND_TIMEOUT" envDefault:"10s"`

	// Submission rate limit, per client IP
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`

	// Client IP resolution. Forwarding headers are ignored unless the peer is a
	// trusted proxy; TRUSTED_PLATFORM names a header set by the edge (e.g. cloudflare).
	TrustedProxies  []string `env:"TRUSTED_PROXIES" envSeparator:","`
	TrustedPlatform string   `env:"TRUSTED_PLATFORM"`

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// IsProduction reports whether the relay runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load loads the configuration from .env files and the process environment
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overwrites variables that are already set
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return parse(env.Options{})
}

// LoadFrom parses configuration from the given variables only. Used by tests.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.OutboundTimeout <= 0 {
		return fmt.Errorf("OUTBOUND_TIMEOUT must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	for i, proxy := range c.TrustedProxies {
		proxy = strings.TrimSpace(proxy)
		c.TrustedProxies[i] = proxy
		if !validProxy(proxy) {
			return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP address or CIDR", proxy)
		}
	}
	return nil
}

// ClientIPHeader maps TRUSTED_PLATFORM to the header carrying the client address.
// Known platform names are expanded; any other value is used as a header name.
func (c *Config) ClientIPHeader() string {
	switch strings.ToLower(strings.TrimSpace(c.TrustedPlatform)) {
	case "":
		return ""
	case "cloudflare":
		return gin.PlatformCloudflare
	case "google", "appengine":
		return gin.PlatformGoogleAppEngine
	default:
		return strings.TrimSpace(c.TrustedPlatform)
	}
}

func validProxy(proxy string) bool {
	if strings.Contains(proxy, "/") {
		_, _, err := net.ParseCIDR(proxy)
		return err == nil
	}
	return net.ParseIP(proxy) != nil
}
