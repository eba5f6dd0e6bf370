package repository

import (
	"context"

	"github.com/diillson/cwlogs-retention-go/internal/domain/entity"
)

// LogGroupPageRequest descreve uma chamada paginada de DescribeLogGroups.
type LogGroupPageRequest struct {
	Limit     int32
	NextToken *string
	Prefix    string
}

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	// Account & Region Operations
	GetAccountID(ctx context.Context, profile string) (string, error)
	GetDefaultRegion(ctx context.Context, profile string) (string, error)
	GetAccessibleRegions(ctx context.Context, profile string) ([]string, error)

	// CloudWatch Logs Operations
	DescribeLogGroupsPage(ctx context.Context, profile, region string, req LogGroupPageRequest) (entity.LogGroupPage, error)
	PutRetentionPolicy(ctx context.Context, profile, region, logGroupName string, days int) error

	// Report upload
	UploadReport(ctx context.Context, profile, bucket, key, filePath string) error
}
