package pkgconfig

import "time"

// Config is the read-only view of the application configuration.
type Config interface {
	GetInt(key string) int64
	GetString(key string) string
	GetDuration(key string) time.Duration
	GetArray(key string) []string
	GetMap(key string) map[string]string
	Close() error
}
