package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug    bool
	TestMode bool
	Env      string
	AppName  string
	// SecretKey signs JWTs. Override it outside of local development.
	SecretKey string

	Server struct {
		Host               string
		JWTExpirationDelta time.Duration
		JWTRefreshDelta    time.Duration
		ShutdownTimeout    time.Duration
	}

	Store struct {
		// Latency is the simulated network round-trip applied to every
		// store operation.
		Latency time.Duration
	}

	Auth struct {
		// VerifyPasswords switches the login path from the demo
		// username-only gate to a real bcrypt check.
		VerifyPasswords bool
	}

	Coursegen struct {
		APIKey string
		Model  string
	}

	RollbarToken string
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Shule")
	v.SetDefault("secretKey", "x2m$7vko)q#ze8dh^1u&rw5(y!c3*bn4-f9s+g6t0a_ljp%i")
	v.SetDefault("server.host", ":8080")
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.jwtRefreshDelta", 4*time.Hour)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("store.latency", 300*time.Millisecond)
	v.SetDefault("auth.verifyPasswords", false)
	v.SetDefault("coursegen.model", "gemini-2.5-flash")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("store.latency", time.Duration(0))
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	conf := &Config{
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		Env:          env,
		AppName:      v.GetString("appName"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.Server.Host = v.GetString("server.host")
	conf.Server.JWTExpirationDelta = v.GetDuration("server.jwtExpirationDelta")
	conf.Server.JWTRefreshDelta = v.GetDuration("server.jwtRefreshDelta")
	conf.Server.ShutdownTimeout = v.GetDuration("server.shutdownTimeout")
	conf.Store.Latency = v.GetDuration("store.latency")
	conf.Auth.VerifyPasswords = v.GetBool("auth.verifyPasswords")
	conf.Coursegen.APIKey = v.GetString("coursegen.apiKey")
	conf.Coursegen.Model = v.GetString("coursegen.model")
	return conf
}

// NewTestConfig returns a Config suitable for tests: no simulated store
// latency and no external credentials.
func NewTestConfig() *Config {
	conf := NewConfig()
	conf.TestMode = true
	conf.Store.Latency = 0
	conf.Coursegen.APIKey = ""
	return conf
}
