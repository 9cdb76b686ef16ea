package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	JWT        JWTConfig
	DB         DBConfig
	Reference  ReferenceConfig
	Accounting AccountingConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Company  string // razón social impresa en los comprobantes
	LogLevel string
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

// JWTConfig configuración de JWT. Con Secret vacío la API queda sin autenticación.
type JWTConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int // vigencia de los tokens emitidos por "contabilizar token"
}

// DBConfig configuración de PostgreSQL (opcional: catálogo PUC en tabla puc_cuentas).
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

// Enabled indica si hay una base de datos configurada.
func (c DBConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.Host != ""
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

// ReferenceConfig rutas de las tablas de referencia (solo lectura, se cargan una vez).
type ReferenceConfig struct {
	ICATariffsPath  string // CSV o XLSX CIIU → tarifa ICA, base mínima, bomberil
	PayablePairPath string // CSV de pares cuenta débito → cuenta por pagar
	PUCCatalogPath  string // XLSX del catálogo PUC de la empresa
	PUCSheet        string
}

// AccountingConfig parámetros del motor de retenciones.
type AccountingConfig struct {
	ICAAccount             string          // Pasivo: ReteICA del municipio
	BomberilAccount        string          // Pasivo: sobretasa bomberil
	PayableFallbackAccount string          // Cuenta por pagar cuando no hay par
	RetefuenteMinimumBase  decimal.Decimal // Base mínima de retención en la fuente
	ICAMunicipality        string          // Municipio que practica reteICA
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, TARIFAS_ICA_PATH, etc.
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

	minBase, err := getDecimal(v, "RETEFUENTE_BASE_MINIMA", "1271000")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "contabilizador"),
			Company:  getString(v, "EMPRESA_NOMBRE", ""),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Issuer:     getString(v, "JWT_ISSUER", "contabilizador"),
			ExpMinutes: getInt(v, "JWT_EXP_MINUTES", 480),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "contabilidad"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Reference: ReferenceConfig{
			ICATariffsPath:  getString(v, "TARIFAS_ICA_PATH", "tarifas_ica_ibague.csv"),
			PayablePairPath: getString(v, "PARES_CXP_PATH", "Pares_Debito-AP_extra_dos.csv"),
			PUCCatalogPath:  getString(v, "PUC_CATALOGO_PATH", "PUC-CENTRO COSTOS SYNERGY.xlsx"),
			PUCSheet:        getString(v, "PUC_HOJA", "PUC"),
		},
		Accounting: AccountingConfig{
			ICAAccount:             getString(v, "PUC_RETEICA_IBAGUE", "2368050000"),
			BomberilAccount:        getString(v, "PUC_BOMBERIL_IBAGUE", "2368400000"),
			PayableFallbackAccount: getString(v, "CXP_CUENTA_DEFECTO", "220505"),
			RetefuenteMinimumBase:  minBase,
			ICAMunicipality:        getString(v, "ICA_MUNICIPIO", "ibague"),
		},
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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

func getDecimal(v *viper.Viper, key, def string) (decimal.Decimal, error) {
	raw := getString(v, key, def)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s inválido (%q): %w", key, raw, err)
	}
	return d, nil
}
