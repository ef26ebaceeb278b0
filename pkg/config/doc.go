// Package config loads typed configuration structs from environment
// variables (with optional .env support) using caarlos0/env struct tags.
// Each configuration type is parsed at most once per process.
package config
