package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string

	// Mode "RO" turns the instance read-only.
	Mode string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Analytics struct {
	// Semicolon-separated event sink base URLs. Empty disables publishing.
	Servers string
}

type Injector struct {
	// Interval between stall sweeps. Zero disables the in-process loop.
	Interval      time.Duration
	MaxInjections int
	CandidatePool int

	// Upper bound on one injection run, external calls included.
	RunTimeout time.Duration
}

type Dispatch struct {
	Workers     int
	QueueSize   int
	TaskTimeout time.Duration
}

type Config struct {
	HTTP      HTTPServer
	Redis     RedisCache
	Postgres  Postgres
	Analytics Analytics
	Injector  Injector
	Dispatch  Dispatch
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{
		HTTP:      *newHTTP(),
		Redis:     *newRedis(),
		Postgres:  *newPostgres(),
		Analytics: *newAnalytics(),
		Injector:  *newInjector(),
		Dispatch:  *newDispatch(),
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg)
	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
		Mode: getenv("HTTP_MODE", "RW"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "test"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newAnalytics() *Analytics {
	return &Analytics{
		Servers: getenv("ANALYTICS_SERVERS", ""),
	}
}

func newInjector() *Injector {
	return &Injector{
		Interval:      getenvDuration("INJECTOR_INTERVAL", 5*time.Minute),
		MaxInjections: getenvInt("INJECTOR_MAX_INJECTIONS", 3),
		CandidatePool: getenvInt("INJECTOR_CANDIDATE_POOL", 200),
		RunTimeout:    getenvDuration("INJECTOR_RUN_TIMEOUT", 30*time.Second),
	}
}

func newDispatch() *Dispatch {
	return &Dispatch{
		Workers:     getenvInt("DISPATCH_WORKERS", 4),
		QueueSize:   getenvInt("DISPATCH_QUEUE_SIZE", 256),
		TaskTimeout: getenvDuration("DISPATCH_TASK_TIMEOUT", 5*time.Second),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, val)
	return val
}

func getenvInt(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %d\n", logtag, key, defaultValue)
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		fmt.Printf("%s %s is not a number. Using default value %d\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %d\n", logtag, key, n)
	return n
}

func getenvDuration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		fmt.Printf("%s %s is not a duration. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	fmt.Printf("%s %s = %s\n", logtag, key, d)
	return d
}
