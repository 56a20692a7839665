// Package config loads creal settings.
//
// Sources are merged lowest to highest priority:
//
//  1. built-in defaults
//  2. creal.yaml (or the file named by --config)
//  3. CREAL_ environment variables
//  4. command-line flags that were explicitly set
//
// The merged result is checked against an embedded CUE schema before it
// is returned.
package config
