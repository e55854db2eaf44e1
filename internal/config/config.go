package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Server configuration
type ServerConfig struct {
	Port              string `mapstructure:"port"`
	Host              string `mapstructure:"host"`
	RequestTimeoutSec int    `mapstructure:"request_timeout_sec"`
}

// MongoDB configuration
type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// Store configuration
type StoreConfig struct {
	Driver              string `mapstructure:"driver"` // mongo | memory
	CascadeTeacherLinks bool   `mapstructure:"cascade_teacher_links"`
}

// Registry configuration
type RegistryConfig struct {
	Provider             string `mapstructure:"provider"` // eureka | consul | none
	ServiceName          string `mapstructure:"service_name"`
	InstanceHost         string `mapstructure:"instance_host"`
	InstanceIP           string `mapstructure:"instance_ip"`
	EurekaHost           string `mapstructure:"eureka_host"`
	EurekaPort           int    `mapstructure:"eureka_port"`
	EurekaServicePath    string `mapstructure:"eureka_service_path"`
	ConsulAddress        string `mapstructure:"consul_address"`
	HeartbeatIntervalSec int    `mapstructure:"heartbeat_interval_sec"`
}

// Log configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Store    StoreConfig    `mapstructure:"store"`
	Registry RegistryConfig `mapstructure:"registry"`
	Log      LogConfig      `mapstructure:"log"`
}

// Default configuration values
const (
	DefaultServerPort           = "3003"
	DefaultServerHost           = ""
	DefaultRequestTimeoutSec    = 8
	DefaultMongoURI             = "mongodb://127.0.0.1:27017"
	DefaultMongoDB              = "Education"
	DefaultStoreDriver          = "mongo"
	DefaultCascadeTeacherLinks  = false
	DefaultRegistryProvider     = "eureka"
	DefaultServiceName          = "sprint2"
	DefaultInstanceHost         = "localhost"
	DefaultInstanceIP           = "127.0.0.1"
	DefaultEurekaHost           = "localhost"
	DefaultEurekaPort           = 8761
	DefaultEurekaServicePath    = "/eureka/apps/"
	DefaultConsulAddress        = "127.0.0.1:8500"
	DefaultHeartbeatIntervalSec = 30
	DefaultLogLevel             = "info"
)

// Store drivers
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Registry providers
const (
	ProviderEureka = "eureka"
	ProviderConsul = "consul"
	ProviderNone   = "none"
)

// env maps each config key to the environment variable that overrides it.
var env = map[string]string{
	"server.port":                     "PORT",
	"server.host":                     "HOST",
	"server.request_timeout_sec":      "REQUEST_TIMEOUT_SEC",
	"mongo.uri":                       "MONGO_URI",
	"mongo.database":                  "MONGO_DB",
	"store.driver":                    "STORE_DRIVER",
	"store.cascade_teacher_links":     "CASCADE_TEACHER_LINKS",
	"registry.provider":               "REGISTRY_PROVIDER",
	"registry.service_name":           "SERVICE_NAME",
	"registry.instance_host":          "INSTANCE_HOST",
	"registry.instance_ip":            "INSTANCE_IP",
	"registry.eureka_host":            "EUREKA_HOST",
	"registry.eureka_port":            "EUREKA_PORT",
	"registry.eureka_service_path":    "EUREKA_SERVICE_PATH",
	"registry.consul_address":         "CONSUL_ADDRESS",
	"registry.heartbeat_interval_sec": "HEARTBEAT_INTERVAL_SEC",
	"log.level":                       "LOG_LEVEL",
}

// New returns a Config built from defaults, an optional config.yaml and the environment.
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)
	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.request_timeout_sec", DefaultRequestTimeoutSec)
	v.SetDefault("mongo.uri", DefaultMongoURI)
	v.SetDefault("mongo.database", DefaultMongoDB)
	v.SetDefault("store.driver", DefaultStoreDriver)
	v.SetDefault("store.cascade_teacher_links", DefaultCascadeTeacherLinks)
	v.SetDefault("registry.provider", DefaultRegistryProvider)
	v.SetDefault("registry.service_name", DefaultServiceName)
	v.SetDefault("registry.instance_host", DefaultInstanceHost)
	v.SetDefault("registry.instance_ip", DefaultInstanceIP)
	v.SetDefault("registry.eureka_host", DefaultEurekaHost)
	v.SetDefault("registry.eureka_port", DefaultEurekaPort)
	v.SetDefault("registry.eureka_service_path", DefaultEurekaServicePath)
	v.SetDefault("registry.consul_address", DefaultConsulAddress)
	v.SetDefault("registry.heartbeat_interval_sec", DefaultHeartbeatIntervalSec)
	v.SetDefault("log.level", DefaultLogLevel)
}

func (c *Config) normalize() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Registry.Provider = strings.ToLower(strings.TrimSpace(c.Registry.Provider))
	if c.Server.RequestTimeoutSec <= 0 {
		c.Server.RequestTimeoutSec = DefaultRequestTimeoutSec
	}
	if c.Registry.HeartbeatIntervalSec <= 0 {
		c.Registry.HeartbeatIntervalSec = DefaultHeartbeatIntervalSec
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// RequestTimeout is the deadline applied to every request context.
func (c *ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// EurekaURL returns the base URL of the Eureka apps endpoint, with a trailing slash.
func (r *RegistryConfig) EurekaURL() string {
	path := "/" + strings.Trim(r.EurekaServicePath, "/") + "/"
	return fmt.Sprintf("http://%s:%d%s", r.EurekaHost, r.EurekaPort, path)
}

// HeartbeatInterval is how often the Eureka lease is renewed.
func (r *RegistryConfig) HeartbeatInterval() time.Duration {
	return time.Duration(r.HeartbeatIntervalSec) * time.Second
}
