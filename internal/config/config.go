package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Media    MediaConfig    `mapstructure:"media"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// MediaConfig configures the video processing pipeline.
type MediaConfig struct {
	FFmpegPath  string `mapstructure:"ffmpeg_path"`
	FFprobePath string `mapstructure:"ffprobe_path"`
	// EnableTranscode gates download-path format conversion. Disabled by
	// default because the media binaries are not present in every hosting
	// environment; the download endpoint then always returns the stored bytes.
	EnableTranscode bool `mapstructure:"enable_transcode"`
	// TempDir is the parent for per-request temp workspaces. Empty means the
	// OS default temp directory.
	TempDir string `mapstructure:"temp_dir"`
	// MaxUploadBytes caps the accepted upload size.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
	// LocalAssetDir is the root for root-relative sample video paths.
	LocalAssetDir string `mapstructure:"local_asset_dir"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling: nested keys map with a replacer,
	// e.g. media.enable_transcode -> MEDIA_ENABLE_TRANSCODE.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "memegrid")
	viper.SetDefault("s3.use_ssl", true)
	viper.SetDefault("jwt.expiration", "1h")
	viper.SetDefault("media.ffmpeg_path", "ffmpeg")
	viper.SetDefault("media.ffprobe_path", "ffprobe")
	viper.SetDefault("media.enable_transcode", false)
	viper.SetDefault("media.temp_dir", "")
	viper.SetDefault("media.max_upload_bytes", 10*1024*1024)
	viper.SetDefault("media.local_asset_dir", "public")

	err = viper.ReadInConfig()
	// Config file is optional; env vars and defaults can carry the full config.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
