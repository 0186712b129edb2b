package database

import (
	"context"
	"log"

	appconfig "agency_billing/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ConnectDynamoDB creates a DynamoDB client.
//
// With DYNAMODB_ENDPOINT set (e.g. http://dynamodb:8000) requests go to that
// endpoint instead of AWS.
func ConnectDynamoDB(cfg appconfig.AWS) *dynamodb.Client {
	awsCfg, err := NewAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to create dynamodb config: %v", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	})
}

// ConnectS3 creates the client used to store generated documents.
// S3_ENDPOINT switches to path-style addressing for local stacks (minio, localstack).
func ConnectS3(cfg appconfig.AWS) *s3.Client {
	awsCfg, err := NewAWSConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to create s3 config: %v", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
}

func NewAWSConfig(ctx context.Context, cfg appconfig.AWS) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")

	return config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(creds),
	)
}
