package config

import (
	"os"
	"strconv"

	"pdf-footer-remover/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort          string
	TempPath            string
	MaxFileSize         int64
	LogLevel            string
	DefaultFooterHeight float64
	MinFooterHeight     float64
	MaxFooterHeight     float64
	PreviewDPI          float64
	PreviewPages        int
	FillColor           string
	AllowedOrigins      []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:  getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		TempPath:    getEnvOrDefault("TEMP_PATH", os.TempDir()),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		// 60pt is roughly 1cm of footer; a comfortable default for most documents.
		DefaultFooterHeight: getEnvFloatOrDefault("DEFAULT_FOOTER_HEIGHT", 60),
		MinFooterHeight:     getEnvFloatOrDefault("MIN_FOOTER_HEIGHT", 10),
		MaxFooterHeight:     getEnvFloatOrDefault("MAX_FOOTER_HEIGHT", 200),
		PreviewDPI:          getEnvFloatOrDefault("PREVIEW_DPI", 150),
		PreviewPages:        getEnvIntOrDefault("PREVIEW_PAGES", 3),
		FillColor:           getEnvOrDefault("FILL_COLOR", "#FFFFFF"),
		AllowedOrigins: []string{
			getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"),
			"http://localhost:4173",
			"http://localhost:3000",
		},
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetTempPath returns the root directory for ephemeral session artifacts
func (c *AppConfig) GetTempPath() string {
	return c.TempPath
}

// GetMaxFileSize returns the maximum allowed size of a single upload
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetDefaultFooterHeight returns the footer height used when a request omits one
func (c *AppConfig) GetDefaultFooterHeight() float64 {
	return c.DefaultFooterHeight
}

// GetMinFooterHeight returns the smallest accepted footer height in points
func (c *AppConfig) GetMinFooterHeight() float64 {
	return c.MinFooterHeight
}

// GetMaxFooterHeight returns the largest accepted footer height in points
func (c *AppConfig) GetMaxFooterHeight() float64 {
	return c.MaxFooterHeight
}

// GetPreviewDPI returns the rasterization resolution for page previews
func (c *AppConfig) GetPreviewDPI() float64 {
	return c.PreviewDPI
}

// GetPreviewPages returns how many leading pages get a preview image
func (c *AppConfig) GetPreviewPages() int {
	return c.PreviewPages
}

// GetFillColor returns the redaction fill color as "#RRGGBB"
func (c *AppConfig) GetFillColor() string {
	return c.FillColor
}

// GetAllowedOrigins returns the CORS allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
