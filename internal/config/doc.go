// Package config loads the analyzer configuration.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. The YAML config file (config.yaml, or LISTINGS_CONFIG_FILE)
//  3. Default values (lowest priority)
//
// A .env file in the working directory is read into the environment before
// anything else.
//
// # Environment Variables
//
// Variables use the LISTINGS_ prefix and the section name:
//
//	LISTINGS_SERVER_PORT=9090
//	LISTINGS_LOGGING_LEVEL=debug
//	LISTINGS_ANALYSIS_VARIANT=basic
//	LISTINGS_ANALYSIS_WORKERS=4
//	LISTINGS_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Validation
//
// Load validates the merged result with validator struct tags and reports
// problems as a CONFIG AppError listing the offending fields.
package config
