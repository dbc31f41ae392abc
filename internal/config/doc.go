// Package config loads and validates tide.json, the project-level
// configuration file for Tide applications. The CLI resolves the project
// root by walking up from the working directory, then maps the file onto
// the live server's runtime options.
package config
