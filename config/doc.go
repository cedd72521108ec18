// Package config loads board-level configuration for the mixer,
// work-queue, and provisioning components from a YAML file (the same
// gopkg.in/yaml.v3 + github.com/google/renameio/v2 atomic-write
// approach as provisioning/yamlsettings.go), with command-line flags
// via github.com/spf13/pflag overriding individual fields — the
// teacher's own examples use stdlib flag for this role; pflag is
// adopted here for its POSIX-style long/short flag pairs and Go-native
// defaults, following the rest of the retrieved corpus's convention
// for CLI entry points.
package config
