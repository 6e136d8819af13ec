// Package config loads and validates Skylark Core configuration.
//
// Configuration comes from a YAML file with environment variable overrides
// (SKYLARK_* prefix). Defaults are applied first, then file values, then
// environment. Validation runs last and reports all problems at once.
//
// Secrets (JWT signing secret, MQTT credentials, worker API key, InfluxDB
// token) should be supplied via environment variables rather than committed
// to the config file.
package config
