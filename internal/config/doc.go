// Package config loads the server configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// an optional dotenv file, then the process environment. The result is
// validated before any Google client is constructed.
package config
