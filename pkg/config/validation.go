package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration against the struct validation tags and
// the cross-field rules the tags cannot express.
func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	return validateMounts(cfg.Mounts)
}

// validateMounts enforces the per-provider requirements and scheme
// uniqueness across the mount table.
func validateMounts(mounts []MountConfig) error {
	seen := make(map[string]bool, len(mounts))

	for i, m := range mounts {
		if seen[m.Scheme] {
			return fmt.Errorf("mount %d: duplicate scheme %q", i, m.Scheme)
		}
		seen[m.Scheme] = true

		switch m.Provider {
		case "local":
			if m.Path == "" {
				return fmt.Errorf("mount %q: local provider requires path", m.Scheme)
			}
		case "badger":
			if m.Path == "" && !m.InMemory {
				return fmt.Errorf("mount %q: badger provider requires path unless in_memory is set", m.Scheme)
			}
		case "s3":
			if m.Bucket == "" {
				return fmt.Errorf("mount %q: s3 provider requires bucket", m.Scheme)
			}
		}
	}

	return nil
}
