package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
)

// DescribeTypeAPI is the subset of the CloudFormation client used here
type DescribeTypeAPI interface {
	DescribeType(ctx context.Context, params *cloudformation.DescribeTypeInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeTypeOutput, error)
}

// Client wraps AWS SDK clients
type Client struct {
	CloudFormation DescribeTypeAPI
	profile        string
	region         string
}

// ClientOption allows customizing the AWS Client
type ClientOption func(*Client)

// WithProfile sets the AWS profile for the client
func WithProfile(profile string) ClientOption {
	return func(c *Client) {
		c.profile = profile
	}
}

// WithRegion sets the AWS region for the client
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// WithCloudFormationAPI injects a preconfigured CloudFormation client and
// skips loading the shared AWS config
func WithCloudFormationAPI(api DescribeTypeAPI) ClientOption {
	return func(c *Client) {
		c.CloudFormation = api
	}
}

// NewClient creates a new AWS Client with the given options
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	c := &Client{}

	for _, opt := range opts {
		opt(c)
	}

	if c.CloudFormation != nil {
		return c, nil
	}

	var configOpts []func(*config.LoadOptions) error

	if c.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(c.profile))
	}

	if c.region != "" {
		configOpts = append(configOpts, config.WithRegion(c.region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	c.CloudFormation = cloudformation.NewFromConfig(cfg)

	return c, nil
}

// Profile returns the shared config profile the client was built with
func (c *Client) Profile() string {
	return c.profile
}

// Region returns the region the client was built with
func (c *Client) Region() string {
	return c.region
}
