// Package config provides configuration management for the broker.
//
// Configuration is loaded from an optional YAML file and overridden by
// environment variables; each attribute remembers whether its value came
// from the default, the file, or the environment.
//
// # Key Configuration Options
//
//   - BROKER_CONFIG_PATH: Directory containing broker.yml
//   - BROKER_CENTER_NAME / BROKER_BROKER_NAME: Names stamped on exports
//   - BROKER_CHECKLIST_ID / BROKER_PROJECT_NAME: Injected sample defaults
//   - BROKER_STUDY_REFNAME: Fallback study reference for experiment exports
//   - BROKER_TOKEN_TTL: Issued token lifetime in seconds
//   - DATABASE_URL: Database connection
//   - PORT: Server listen port
package config
