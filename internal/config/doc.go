// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation,
// so secrets such as the API key and database password can stay out of the file.
// Command-line flags override file values; Validate runs after both are applied.
package config
