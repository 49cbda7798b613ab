package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/nimbus-rentals/service-rental/internal/auth"
	"github.com/nimbus-rentals/service-rental/internal/events"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the config as a lib/pq-style connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// KafkaConfig holds event-stream settings.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ServiceConfig holds all configuration for the rental service.
type ServiceConfig struct {
	Port   string
	AppEnv string
	DB     DatabaseConfig
	Kafka  KafkaConfig

	// APIKeys maps a presented X-API-Key value to the identity it grants.
	APIKeys map[string]auth.Identity

	// MaxPageSize caps the limit a caller may request on list endpoints.
	MaxPageSize int
}

// Load reads configuration from the environment with the RENTAL_ prefix.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("RENTAL")
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "rental")
	v.SetDefault("DB_PASSWORD", "rental")
	v.SetDefault("DB_NAME", "vehicle_rental")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", events.TopicRentalEvents)
	v.SetDefault("MAX_PAGE_SIZE", 100)
	v.SetDefault("API_KEYS", "")

	apiKeys, err := parseAPIKeys(v.GetString("API_KEYS"))
	if err != nil {
		return nil, fmt.Errorf("invalid RENTAL_API_KEYS: %w", err)
	}

	return &ServiceConfig{
		Port:   normalizePort(v.GetString("SERVICE_PORT")),
		AppEnv: v.GetString("APP_ENV"),
		DB: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(v.GetString("KAFKA_BROKERS"), ","),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		APIKeys:     apiKeys,
		MaxPageSize: v.GetInt("MAX_PAGE_SIZE"),
	}, nil
}

// defaultAPIKeys is the development key table: the key is the account name,
// the role is derived from it. Production deployments override the table
// through RENTAL_API_KEYS.
func defaultAPIKeys() map[string]auth.Identity {
	return map[string]auth.Identity{
		"Admin":            {Role: auth.RoleAdmin, UserID: "Admin"},
		"CarManager":       {Role: auth.RoleCarManager, UserID: "CarManager"},
		"MotorbikeManager": {Role: auth.RoleMotorbikeManager, UserID: "MotorbikeManager"},
		"Customer1":        {Role: auth.RoleCustomer, UserID: "Customer1"},
		"Customer2":        {Role: auth.RoleCustomer, UserID: "Customer2"},
	}
}

// parseAPIKeys parses "key=Role:userID,key2=Role:userID2". An empty spec
// yields the development defaults.
func parseAPIKeys(spec string) (map[string]auth.Identity, error) {
	if strings.TrimSpace(spec) == "" {
		return defaultAPIKeys(), nil
	}

	keys := make(map[string]auth.Identity)
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, grant, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("entry %q: want key=Role:userID", entry)
		}
		roleStr, userID, ok := strings.Cut(grant, ":")
		if !ok {
			return nil, fmt.Errorf("entry %q: want key=Role:userID", entry)
		}
		role, err := auth.ParseRole(roleStr)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry, err)
		}
		keys[strings.TrimSpace(key)] = auth.Identity{Role: role, UserID: strings.TrimSpace(userID)}
	}
	return keys, nil
}

func normalizePort(port string) string {
	if port == "" {
		return ":8080"
	}
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}
