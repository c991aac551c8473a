// Package config loads the YAML configuration of the aibridge CLI: log
// settings plus, per provider, the enabled flag, the credential variable and
// the resolved model configuration.
package config
