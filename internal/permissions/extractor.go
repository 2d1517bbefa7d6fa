package permissions

import (
	"context"
	"fmt"
	"strings"

	"github.com/vietdv277/cfnperms/internal/logging"
	"github.com/vietdv277/cfnperms/pkg/provider"
	"github.com/vietdv277/cfnperms/pkg/types"
)

// Extractor resolves the IAM permissions of resource type handlers
type Extractor struct {
	source provider.SchemaSource
}

// NewExtractor creates an Extractor. A nil source falls back to the public
// schema bucket.
func NewExtractor(source provider.SchemaSource) *Extractor {
	if source == nil {
		source = NewHTTPSource()
	}
	return &Extractor{source: source}
}

// FormatResourceType converts AWS::S3::Bucket to AWS-S3-Bucket
func FormatResourceType(resourceType string) string {
	return strings.ReplaceAll(resourceType, "::", "-")
}

// ValidateResourceType trims the input and rejects empty values
func ValidateResourceType(resourceType string) (string, error) {
	resourceType = strings.TrimSpace(resourceType)
	if resourceType == "" {
		return "", &InputError{
			Field:   "resource type",
			Message: "Resource type is required.",
		}
	}
	return resourceType, nil
}

// ParseOperation trims and lower-cases the input. An empty result selects
// every operation and is returned as "".
func ParseOperation(operation string) (types.Operation, error) {
	op := types.Operation(strings.ToLower(strings.TrimSpace(operation)))
	if op == "" {
		return "", nil
	}
	if !op.IsValid() {
		return "", &InputError{
			Field:   "operation",
			Value:   string(op),
			Message: fmt.Sprintf("Invalid operation. Valid operations are: %s", strings.Join(types.OperationNames(), ", ")),
		}
	}
	return op, nil
}

// GetSchema fetches the schema of a resource type from the configured source
func (e *Extractor) GetSchema(ctx context.Context, resourceType string) (*types.Schema, error) {
	schema, err := e.source.FetchSchema(ctx, resourceType)
	if err != nil {
		return nil, err
	}
	logging.Debug().
		Str("source", e.source.Name()).
		Str("resource_type", resourceType).
		Int("handlers", len(schema.Handlers)).
		Msg("schema loaded")
	return schema, nil
}

// ExtractPermissions selects the permissions of one operation, or of every
// operation in types.AllOperations order when operation is empty. Handlers
// missing from the schema are omitted; handlers without a permissions list
// yield an empty list.
func ExtractPermissions(schema *types.Schema, operation types.Operation) types.PermissionSet {
	set := types.PermissionSet{}
	if schema == nil {
		return set
	}

	ops := types.AllOperations
	if operation != "" {
		ops = []types.Operation{types.Operation(strings.ToLower(string(operation)))}
	}

	for _, op := range ops {
		handler, ok := schema.Handlers[string(op)]
		if !ok {
			continue
		}
		perms := handler.Permissions
		if perms == nil {
			perms = []string{}
		}
		set = append(set, types.OperationPermissions{Operation: op, Permissions: perms})
	}

	return set
}

// Run validates the inputs, fetches the schema and extracts the permissions.
// Nothing is fetched when either input is invalid.
func (e *Extractor) Run(ctx context.Context, resourceType, operation string) (types.PermissionSet, error) {
	resourceType, err := ValidateResourceType(resourceType)
	if err != nil {
		return nil, err
	}

	op, err := ParseOperation(operation)
	if err != nil {
		return nil, err
	}

	schema, err := e.GetSchema(ctx, resourceType)
	if err != nil {
		return nil, err
	}

	return ExtractPermissions(schema, op), nil
}
