package config

import "os"

// Config carries every identifier the layer needs at startup; database,
// collection and bucket names are injected here rather than embedded at the
// call sites.
type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	UsersCollection         string
	PostsCollection         string
	SavedPostsCollection    string
	StorageBucket           string
	PreviewEndpoint         string
	AvatarEndpoint          string
	JWTSecret               string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "snapgram"),
		UsersCollection:         getEnv("USERS_COLLECTION", "users"),
		PostsCollection:         getEnv("POSTS_COLLECTION", "posts"),
		SavedPostsCollection:    getEnv("SAVED_POSTS_COLLECTION", "saved_posts"),
		StorageBucket:           getEnv("STORAGE_BUCKET", ""),
		PreviewEndpoint:         getEnv("PREVIEW_ENDPOINT", "https://media.snapgram.app/v1"),
		AvatarEndpoint:          getEnv("AVATAR_ENDPOINT", "https://avatars.snapgram.app/api"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
