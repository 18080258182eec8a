// Package main provides the brokerctl CLI for the specimen metadata broker.
//
// The broker tracks organisms, samples, experiments, reads and assemblies,
// stages submission payloads through a draft/ready/submitted/rejected status
// machine, archives what the registry reports back, and renders deterministic
// SAMPLE, EXPERIMENT and RUN XML documents.
//
// # Quick Start
//
//	# Generate a token signing key
//	export BROKER_TOKEN_KEY=$(head -c 32 /dev/urandom | base64)
//
//	# Run database migrations
//	brokerctl db migrate
//
//	# Start the server
//	brokerctl server
//
//	# Issue a curator token
//	brokerctl token issue curator-1 --role curator
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - BROKER_TOKEN_KEY: Base64-encoded HMAC key for access tokens
//   - BROKER_CONFIG_PATH: Directory containing broker.yml
//   - BROKER_LOG_LEVEL: Log level (debug enables SQL logging)
//   - PORT: Server port (default: 8000)
package main
