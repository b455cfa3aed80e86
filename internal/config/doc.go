// Package config loads, normalizes, and validates vidsentiment configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads optional .env files, and honours
// environment overrides such as OPENAI_API_KEY. The Config type centralizes
// every knob the CLI and HTTP server need, so tool locations, transcription
// backends, and cache settings are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical backend names, and clear validation errors.
package config
