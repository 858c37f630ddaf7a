package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	SaveBackend   string
	SaveDir       string
	RedisURL      string
	RedisPassword string
	RedisDB       int

	TickInterval     time.Duration
	FreezeMin        int
	FreezeMaxInit    int
	FreezeMaxPersist int

	SpectatorAddr    string
	SpectatorOrigins []string
	LogLevel         string
	DefaultBoardSize int
}

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

var AppConfig *Config

func LoadConfig() *Config {
	backend := strings.ToLower(GetEnv("SAVE_BACKEND", BackendFile))
	if backend != BackendFile && backend != BackendRedis {
		log.Warn().Str("value", backend).Msg("unknown SAVE_BACKEND, using file")
		backend = BackendFile
	}

	// Freeze timing, in seconds of the tick clock
	freezeMin := GetEnvAsInt("FREEZE_MIN_SECONDS", 5)
	if freezeMin < 0 {
		freezeMin = 5
	}
	maxInit := GetEnvAsInt("FREEZE_MAX_INIT_SECONDS", 10)
	maxPersist := GetEnvAsInt("FREEZE_MAX_PERSIST_SECONDS", 15)
	if maxInit < freezeMin {
		maxInit = freezeMin
	}
	if maxPersist < freezeMin {
		maxPersist = freezeMin
	}

	tick := GetEnvAsDuration("FREEZE_TICK_MS", time.Second, time.Millisecond)
	if tick <= 0 {
		tick = time.Second
	}

	// Spectator CORS: empty means any origin may watch
	var origins []string
	if originsStr := GetEnv("SPECTATOR_ORIGINS", ""); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	AppConfig = &Config{
		SaveBackend:      backend,
		SaveDir:          GetEnv("SAVE_DIR", "save"),
		RedisURL:         GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:    GetEnv("REDIS_PASSWORD", ""),
		RedisDB:          GetEnvAsInt("REDIS_DB", 0),
		TickInterval:     tick,
		FreezeMin:        freezeMin,
		FreezeMaxInit:    maxInit,
		FreezeMaxPersist: maxPersist,
		SpectatorAddr:    GetEnv("SPECTATOR_ADDR", ""),
		SpectatorOrigins: origins,
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		DefaultBoardSize: GetEnvAsInt("DEFAULT_BOARD_SIZE", 8),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Int("default", defaultValue).Msg("invalid integer, using default")
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of unit.
func GetEnvAsDuration(key string, defaultValue, unit time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Dur("default", defaultValue).Msg("invalid duration, using default")
		return defaultValue
	}
	return time.Duration(value) * unit
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Str("key", key).Str("value", valueStr).Bool("default", defaultValue).Msg("invalid boolean, using default")
		return defaultValue
	}
	return value
}
