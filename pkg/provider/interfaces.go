package provider

import (
	"context"

	"github.com/vietdv277/cfnperms/pkg/types"
)

// Source names accepted by --source
const (
	SourceHTTP     = "http"
	SourceRegistry = "registry"
)

// SchemaSource fetches the provider schema of a CloudFormation resource type
type SchemaSource interface {
	// Name returns the source identifier (e.g., "http", "registry")
	Name() string

	// FetchSchema returns the parsed schema for a resource type such as
	// AWS::S3::Bucket
	FetchSchema(ctx context.Context, resourceType string) (*types.Schema, error)
}

// SchemaSourceFunc adapts a plain function to SchemaSource
type SchemaSourceFunc func(ctx context.Context, resourceType string) (*types.Schema, error)

// Name implements SchemaSource
func (f SchemaSourceFunc) Name() string { return "func" }

// FetchSchema implements SchemaSource
func (f SchemaSourceFunc) FetchSchema(ctx context.Context, resourceType string) (*types.Schema, error) {
	return f(ctx, resourceType)
}
