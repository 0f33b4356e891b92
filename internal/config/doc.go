// Package config loads and saves the arbor.json tool configuration used by
// the CLI and bench runner. Library packages never read configuration; it
// exists for the tools only.
package config
