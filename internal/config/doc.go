// Package config loads and validates application configuration from
// defaults, an optional config.yaml and BOOKBRAIN_-prefixed environment
// variables, in increasing order of precedence.
package config
