package aws

import (
	"context"
	"errors"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/vietdv277/cfnperms/internal/logging"
	"github.com/vietdv277/cfnperms/internal/permissions"
	"github.com/vietdv277/cfnperms/pkg/provider"
	"github.com/vietdv277/cfnperms/pkg/types"
)

// RegistrySource reads resource schemas from the CloudFormation registry of
// the caller's account and region
type RegistrySource struct {
	client *Client
}

var _ provider.SchemaSource = (*RegistrySource)(nil)

// NewRegistrySource creates a RegistrySource on top of an AWS client
func NewRegistrySource(client *Client) *RegistrySource {
	return &RegistrySource{client: client}
}

// Name implements provider.SchemaSource
func (s *RegistrySource) Name() string {
	return provider.SourceRegistry
}

// FetchSchema implements provider.SchemaSource
func (s *RegistrySource) FetchSchema(ctx context.Context, resourceType string) (*types.Schema, error) {
	logging.Debug().
		Str("type_name", resourceType).
		Str("profile", s.client.Profile()).
		Str("region", s.client.Region()).
		Msg("describing registry type")

	output, err := s.client.CloudFormation.DescribeType(ctx, &cloudformation.DescribeTypeInput{
		Type:     cftypes.RegistryTypeResource,
		TypeName: awssdk.String(resourceType),
	})
	if err != nil {
		logging.Warn().Err(err).Str("type_name", resourceType).Msg("describe type failed")
		return nil, &permissions.NetworkError{Err: err}
	}

	body := awssdk.ToString(output.Schema)
	if body == "" {
		return nil, &permissions.NetworkError{Err: errors.New("registry returned an empty schema for " + resourceType)}
	}

	schema, err := permissions.DecodeSchema(strings.NewReader(body))
	if err != nil {
		return nil, &permissions.NetworkError{Err: err}
	}

	return schema, nil
}
