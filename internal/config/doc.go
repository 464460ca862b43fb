// Package config loads the server's own runtime configuration from multiple
// sources (YAML files, a dotenv file, environment variables, CLI flags) with
// precedence: CLI flags > Environment variables > YAML config > Defaults. The
// frontend configuration record is not part of it; see package frontend.
package config
