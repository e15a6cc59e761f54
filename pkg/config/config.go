package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Latency LatencyConfig
	AI      AIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// StorageConfig configuración del almacén clave-valor local.
// El driver "sqlite" persiste en un único archivo; "memory" es volátil (tests, demos).
type StorageConfig struct {
	Driver    string // sqlite | memory
	Path      string // ruta del archivo .db cuando el driver es sqlite
	Namespace string // prefijo de las claves persistidas (p.ej. intellicrm_customers)
}

// LatencyConfig controla la latencia simulada de las operaciones.
// Scale multiplica los retardos base de cada operación; 0 los desactiva.
type LatencyConfig struct {
	Scale float64
}

// AIConfig configuración del colaborador de sentimiento (Gemini).
// Si APIKey está vacío, el análisis se omite y los comentarios quedan sin sentimiento.
type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORAGE_DRIVER, GEMINI_API_KEY, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// Bind de variables de entorno (Viper las lee automáticamente si AutomaticEnv está activo)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "intellicrm-core"),
		},
		Storage: StorageConfig{
			Driver:    getString(v, "STORAGE_DRIVER", "sqlite"),
			Path:      getString(v, "STORAGE_PATH", "intellicrm.db"),
			Namespace: getString(v, "STORAGE_NAMESPACE", "intellicrm"),
		},
		Latency: LatencyConfig{
			Scale: getFloat(v, "LATENCY_SCALE", 1.0),
		},
		AI: AIConfig{
			GeminiAPIKey: getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:  getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
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

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			f, err := strconv.ParseFloat(v.GetString(key), 64)
			if err != nil {
				return def
			}
			return f
		default:
			return v.GetFloat64(key)
		}
	}
	return def
}
