// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file, an optional .env file and BILEMO_
// prefixed environment variables.
package config
