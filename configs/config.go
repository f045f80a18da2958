package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	RedisAddr        string
	ServerPort       string
	JWTSecret        string
	PistonURL        string
	ExecutionTimeout int // seconds
}

func LoadConfig() *Config {
	err := godotenv.Load()

	if err != nil {
		log.Fatal("Error loading .env file", err)
	}

	timeout, err := strconv.Atoi(os.Getenv("EXECUTION_TIMEOUT_SECONDS"))
	if err != nil || timeout <= 0 {
		timeout = 10
	}

	return &Config{
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		ServerPort:       os.Getenv("SERVER_PORT"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		PistonURL:        os.Getenv("PISTON_URL"),
		ExecutionTimeout: timeout,
	}
}
