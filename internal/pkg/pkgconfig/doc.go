// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Business code depends on the Config interface; the Viper implementation
// layers an optional YAML file, built-in defaults and environment variables
// (MARKETDATA_API_KEY overrides marketdata.api_key, and so on).
package pkgconfig
