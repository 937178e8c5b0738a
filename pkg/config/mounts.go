package config

import (
	"context"
	"fmt"

	"github.com/marmos91/bridgefs/internal/logger"
	"github.com/marmos91/bridgefs/pkg/provider"
	badgerprovider "github.com/marmos91/bridgefs/pkg/provider/badger"
	localprovider "github.com/marmos91/bridgefs/pkg/provider/local"
	memoryprovider "github.com/marmos91/bridgefs/pkg/provider/memory"
	s3provider "github.com/marmos91/bridgefs/pkg/provider/s3"
)

// BuildMounts creates the mount table from configuration.
//
// Every entry in cfg.Mounts is turned into a provider instance and
// registered under its scheme. On any failure, providers created so far are
// closed before returning.
func BuildMounts(ctx context.Context, cfg *Config) (*provider.Mounts, error) {
	mounts := provider.NewMounts()

	for _, mc := range cfg.Mounts {
		p, err := createProvider(ctx, mc)
		if err != nil {
			_ = mounts.Close()
			return nil, fmt.Errorf("mount %q: %w", mc.Scheme, err)
		}

		if _, err := mounts.Register(mc.Scheme, p, mc.Readonly); err != nil {
			_ = p.Close()
			_ = mounts.Close()
			return nil, err
		}

		logger.Info("registered mount",
			logger.KeyScheme, mc.Scheme,
			logger.KeyProvider, mc.Provider,
			logger.KeyReadonly, mc.Readonly,
		)
	}

	return mounts, nil
}

// createProvider creates a single provider instance.
func createProvider(ctx context.Context, mc MountConfig) (provider.Provider, error) {
	switch mc.Provider {
	case "memory":
		return memoryprovider.New(), nil

	case "local":
		return localprovider.New(mc.Path)

	case "badger":
		return badgerprovider.New(badgerprovider.Config{
			Dir:      mc.Path,
			InMemory: mc.InMemory,
		})

	case "s3":
		return s3provider.NewFromConfig(ctx, s3provider.Config{
			Bucket:         mc.Bucket,
			Region:         mc.Region,
			Endpoint:       mc.Endpoint,
			KeyPrefix:      mc.Prefix,
			ForcePathStyle: mc.ForcePathStyle,
		})

	default:
		return nil, fmt.Errorf("unknown provider type: %q", mc.Provider)
	}
}
