// Package awsmsg constructs the AWS messaging clients shared by the pipeline
// processes. Clients are built once at startup and injected; no package holds
// a global handle.
package awsmsg

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Clients bundles the messaging-backend clients for one process.
type Clients struct {
	SQS         *sqs.Client
	SNS         *sns.Client
	EventBridge *eventbridge.Client
}

// Load resolves AWS configuration through the SDK's default chain, pinning the
// region when one is supplied, and builds the three messaging clients.
func Load(ctx context.Context, region string) (*Clients, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return NewClients(cfg), nil
}

// NewClients builds the messaging clients from an already-resolved config.
func NewClients(cfg aws.Config) *Clients {
	return &Clients{
		SQS:         sqs.NewFromConfig(cfg),
		SNS:         sns.NewFromConfig(cfg),
		EventBridge: eventbridge.NewFromConfig(cfg),
	}
}
