package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	RedisAddr     string
	RedisPassword string

	VODBucket        string
	ThumbnailsBucket string

	FFmpegPath  string
	FFprobePath string
	TmpDir      string

	JWTPublicKey       string
	RealtimeGatewayURL string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	viper.SetDefault("VOD_BUCKET", "vods")
	viper.SetDefault("THUMBNAILS_BUCKET", "thumbnails")
	viper.SetDefault("FFMPEG_PATH", "ffmpeg")
	viper.SetDefault("FFPROBE_PATH", "ffprobe")
	viper.SetDefault("TMP_DIR", "/tmp")

	required := []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
		"MINIO_ENDPOINT",
		"MINIO_ACCESS_KEY",
		"MINIO_SECRET_KEY",
	}
	for _, key := range required {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		VODBucket:        viper.GetString("VOD_BUCKET"),
		ThumbnailsBucket: viper.GetString("THUMBNAILS_BUCKET"),

		FFmpegPath:  viper.GetString("FFMPEG_PATH"),
		FFprobePath: viper.GetString("FFPROBE_PATH"),
		TmpDir:      viper.GetString("TMP_DIR"),

		JWTPublicKey:       viper.GetString("JWT_PUBLIC_KEY"),
		RealtimeGatewayURL: viper.GetString("REALTIME_GATEWAY_URL"),
	}, nil
}

// Buckets lists every bucket the service owns, in init order.
func (s *Settings) Buckets() []string {
	return []string{s.VODBucket, s.ThumbnailsBucket}
}
