package config

import "os"

type Config struct {
	Port             string
	Env              string
	PostgresUrl      string
	MongoURI         string
	MongoDatabase    string
	YouTubeAPIKey    string
	ConversationsURL string
	MemoriesURL      string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		PostgresUrl:      getEnv("POSTGRES_URL", "http://localhost:5432"),
		MongoURI:         getEnv("MONGO_URI", ""),
		MongoDatabase:    getEnv("MONGO_DATABASE", "ushadow"),
		YouTubeAPIKey:    getEnv("YOUTUBE_API_KEY", ""),
		ConversationsURL: getEnv("CONVERSATIONS_URL", "http://localhost:8081"),
		MemoriesURL:      getEnv("MEMORIES_URL", "http://localhost:8082"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
