// Package config loads veto configuration from repo-local and global TOML or
// YAML files and resolves it into per-invocation settings. It is internal;
// CLI code layers flags on top of the resolved settings.
package config
