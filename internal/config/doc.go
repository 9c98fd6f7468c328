// Package config loads gdcsort settings from .env files and GDCSORT_*
// environment variables and builds the logger.
package config
