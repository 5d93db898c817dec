// Package config loads runtime settings for the MedXScan CLI from, in
// order of increasing precedence: built-in defaults, the environment
// (including a .env file), an optional JSON file and command-line flags.
package config
