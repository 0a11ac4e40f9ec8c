package config

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
)

// EnvUploadMaxSize overrides the maximum import upload size.
const EnvUploadMaxSize = "UPLOAD_MAX_SIZE"

// UploadConfig bounds multipart uploads.
type UploadConfig struct {
	MaxSize string `toml:"max_size"`

	maxSizeVal int64
}

// MaxSizeBytes returns the parsed upload limit. Valid after Finalize.
func (c *UploadConfig) MaxSizeBytes() int64 {
	return c.maxSizeVal
}

func (c *UploadConfig) Finalize() error {
	if c.MaxSize == "" {
		c.MaxSize = "10MB"
	}
	if v := os.Getenv(EnvUploadMaxSize); v != "" {
		c.MaxSize = v
	}

	size, err := units.FromHumanSize(c.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid max_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	c.maxSizeVal = size
	return nil
}

func (c *UploadConfig) Merge(overlay *UploadConfig) {
	if overlay.MaxSize != "" {
		c.MaxSize = overlay.MaxSize
	}
}
