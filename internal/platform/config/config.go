package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration.
type Server struct {
	Addr string

	// MongoURI selects the persistence backend: when empty the process
	// runs on in-memory stores (dev mode), otherwise on MongoDB.
	MongoURI string
	MongoDB  string

	// Fill-percentage thresholds driving level alerts.
	CriticalLevelPct float64
	LowLevelPct      float64
}

// FromEnv builds a Server config from environment variables so main stays
// lean. A .env file in the working directory is loaded first when present.
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("AGUASUR_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	db := os.Getenv("MONGO_DB")
	if db == "" {
		db = "aguasur"
	}

	return Server{
		Addr:             addr,
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          db,
		CriticalLevelPct: envFloat("TANK_CRITICAL_PCT", 20),
		LowLevelPct:      envFloat("TANK_LOW_PCT", 40),
	}
}

func envFloat(key string, def float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
