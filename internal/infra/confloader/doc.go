// Package confloader provides the configuration loading mechanism.
//
// This package implements a flexible configuration loader that supports
// multiple sources and formats using koanf as the underlying library.
//
// Features:
//
//   - Multiple Sources: files, dotenv, environment variables, flags, maps
//   - Watch Support: automatic reload on config file changes
//   - Type Safety: unmarshaling into typed structs
//
// Priority (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables (KEVA_ prefix)
//  3. Dotenv file
//  4. Configuration files
//  5. Default values
package confloader
