package initializers

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UploadConfig is the server-side policy for captured payloads (images from
// the camera/screen/file paths, audio from the microphone/upload paths).
// Payloads are validated against it before any note mutation happens, so a
// rejected capture leaves no partial state behind.
type UploadConfig struct {
	MaxSize    int64
	ImageTypes []string
	AudioTypes []string
}

var Conf UploadConfig

// uploadsConfigYAML defines optional YAML configuration for upload settings.
// If present, it overrides environment variables for upload-related fields.
type uploadsConfigYAML struct {
	MaxFileSize       int64    `yaml:"max_file_size"`
	AllowedImageTypes []string `yaml:"allowed_image_types"`
	AllowedAudioTypes []string `yaml:"allowed_audio_types"`
}

// loadUploadsConfig tries to load YAML config from disk. If not found, returns
// nil with error.
func loadUploadsConfig() (*uploadsConfigYAML, error) {
	path := os.Getenv("UPLOADS_CONFIG_FILE")
	if strings.TrimSpace(path) == "" {
		path = "config/uploads.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg uploadsConfigYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitUploads loads the upload policy from environment, with an optional YAML
// override file.
func InitUploads() error {
	Conf = UploadConfig{
		MaxSize:    parseInt64(os.Getenv("MAX_UPLOAD_SIZE"), 10485760),
		ImageTypes: parseMimeList(os.Getenv("ALLOWED_IMAGE_TYPES"), []string{"image/png", "image/jpeg", "image/webp"}),
		AudioTypes: parseMimeList(os.Getenv("ALLOWED_AUDIO_TYPES"), []string{"audio/wav", "audio/x-wav", "audio/mpeg", "audio/mp4", "audio/aac", "audio/webm", "audio/ogg"}),
	}

	if yamlCfg, err := loadUploadsConfig(); err == nil && yamlCfg != nil {
		if yamlCfg.MaxFileSize > 0 {
			Conf.MaxSize = yamlCfg.MaxFileSize
		}
		if len(yamlCfg.AllowedImageTypes) > 0 {
			Conf.ImageTypes = yamlCfg.AllowedImageTypes
		}
		if len(yamlCfg.AllowedAudioTypes) > 0 {
			Conf.AudioTypes = yamlCfg.AllowedAudioTypes
		}
	}
	return nil
}

// CheckImageAllowed validates a sniffed image payload against the policy.
func CheckImageAllowed(size int64, contentType string) error {
	return checkAllowed(size, contentType, Conf.ImageTypes, "image")
}

// CheckAudioAllowed validates a sniffed audio payload against the policy.
func CheckAudioAllowed(size int64, contentType string) error {
	return checkAllowed(size, contentType, Conf.AudioTypes, "audio")
}

func checkAllowed(size int64, contentType string, allowed []string, kind string) error {
	if size > Conf.MaxSize {
		return fmt.Errorf("%s payload exceeds the %d byte limit", kind, Conf.MaxSize)
	}
	ct := strings.Split(contentType, ";")[0]
	for _, a := range allowed {
		if strings.EqualFold(a, ct) {
			return nil
		}
	}
	return fmt.Errorf("%s type %q is not allowed", kind, ct)
}

func parseInt64(raw string, fallback int64) int64 {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func parseMimeList(raw string, fallback []string) []string {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		p := strings.TrimSpace(part)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
