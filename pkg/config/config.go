package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	StoreBolt     = "bolt"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Log    LogConfig
	HTTP   HTTPConfig
	Store  StoreConfig
	DB     DBConfig
	Admin  AdminConfig
	Slots  SlotsConfig
	Orders OrdersConfig
	Shop   ShopConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel y archivo opcional de logs.
type LogConfig struct {
	Level string
	File  string
}

// StoreConfig selección del medio clave-valor.
type StoreConfig struct {
	Driver string // bolt | postgres | memory
	Path   string // archivo bbolt
}

// DBConfig configuración de PostgreSQL (solo con STORE_DRIVER=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// AdminConfig passcode inicial y firma del token del panel de administración.
type AdminConfig struct {
	DefaultPass  string
	TokenSecret  string
	TokenMinutes int // 0 = sin expiración
	TokenIssuer  string
}

// SlotsConfig calendario de entregas (expresión cron estándar).
type SlotsConfig struct {
	Schedule string
	Count    int
}

// OrdersConfig generación de IDs y tareas posteriores al checkout.
type OrdersConfig struct {
	SnowflakeNode  int64
	WorkerPoolSize int
}

// ShopConfig datos que aparecen en la factura y el mensaje compartido.
type ShopConfig struct {
	Name           string
	CurrencySymbol string
	Footer         string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, STORE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "organic-orders"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
			File:  getString(v, "LOG_FILE", ""),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getString(v, "STORE_DRIVER", StoreBolt)),
			Path:   getString(v, "STORE_PATH", "organic-orders.db"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "organic_orders"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Admin: AdminConfig{
			DefaultPass:  getString(v, "ADMIN_DEFAULT_PASS", "organic@123"),
			TokenSecret:  getString(v, "ADMIN_TOKEN_SECRET", ""),
			TokenMinutes: getInt(v, "ADMIN_TOKEN_MINUTES", 0),
			TokenIssuer:  getString(v, "ADMIN_TOKEN_ISSUER", "organic-orders"),
		},
		Slots: SlotsConfig{
			Schedule: getString(v, "SLOT_SCHEDULE", "0 0 * * 2,5"),
			Count:    getInt(v, "SLOT_COUNT", 12),
		},
		Orders: OrdersConfig{
			SnowflakeNode:  int64(getInt(v, "SNOWFLAKE_NODE", 1)),
			WorkerPoolSize: getInt(v, "WORKER_POOL_SIZE", 4),
		},
		Shop: ShopConfig{
			Name:           getString(v, "SHOP_NAME", "Organic Grocery"),
			CurrencySymbol: getString(v, "CURRENCY_SYMBOL", "₹"),
			Footer: getString(v, "SHOP_FOOTER",
				"Thank you for supporting organic farmers. Tue & Fri deliveries."),
		},
	}

	switch cfg.Store.Driver {
	case StoreBolt, StorePostgres, StoreMemory:
	default:
		return nil, fmt.Errorf("STORE_DRIVER no soportado: %q", cfg.Store.Driver)
	}
	if cfg.Admin.TokenSecret == "" {
		// Sin secreto configurado el token solo vale mientras viva el proceso.
		cfg.Admin.TokenSecret = uuid.NewString()
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
