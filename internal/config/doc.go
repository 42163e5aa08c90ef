// Package config manages user-level settings stored at ~/.agentindex/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default registry root and the dist output directory.
package config
