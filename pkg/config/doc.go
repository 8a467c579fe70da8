// Package config provides configuration management for regofmt.
//
// Configuration is read from a YAML file, by default .regofmt.yaml in the
// working directory:
//
//	format:
//	  indent: "\t"
//	  strict: false
//	  if_keyword: always
//	parser:
//	  rego_version: v0
//	workspace:
//	  exclude: [".git", "testdata"]
//	telemetry:
//	  logging:
//	    level: debug
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention REGOFMT_SECTION_FIELD.
// For example:
//
//   - REGOFMT_FORMAT_INDENT overrides format.indent ("\t" is accepted literally)
//   - REGOFMT_PARSER_REGO_VERSION overrides parser.rego_version
//   - REGOFMT_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Current Configuration
//
// The command stores the loaded configuration with SetConfig and reads it
// back with GetConfig. In watch mode a change of the configuration file is
// picked up with ReloadConfig, which re-applies command line flags through
// adjustments and keeps the previous configuration when the new one is
// invalid:
//
//	cfg, err := config.ReloadConfig(".regofmt.yaml", applyFlags)
//	if err != nil {
//	    logger.Warn("keeping current configuration", "error", err)
//	}
package config
