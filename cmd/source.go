package cmd

import (
	"context"

	"github.com/vietdv277/cfnperms/internal/aws"
	"github.com/vietdv277/cfnperms/internal/config"
	"github.com/vietdv277/cfnperms/internal/permissions"
	"github.com/vietdv277/cfnperms/pkg/provider"
)

// newSchemaSource is replaced in tests
var newSchemaSource = defaultSchemaSource

func defaultSchemaSource(ctx context.Context, s *config.Settings) (provider.SchemaSource, error) {
	if s.Source == provider.SourceRegistry {
		if s.Profile != "" {
			if err := aws.ValidateProfile(s.Profile); err != nil {
				return nil, err
			}
		}
		client, err := aws.NewClient(ctx, aws.WithProfile(s.Profile), aws.WithRegion(s.Region))
		if err != nil {
			return nil, err
		}
		return aws.NewRegistrySource(client), nil
	}

	// The public schema bucket lives in a single region; region only
	// applies to the registry client.
	return permissions.NewHTTPSource(
		permissions.WithBaseURL(s.BaseURL),
		permissions.WithTimeout(s.Timeout),
	), nil
}
