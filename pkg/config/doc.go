// Package config loads typed settings from environment variables and
// optional dotenv files.
package config
