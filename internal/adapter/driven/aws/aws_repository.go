package aws

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwlTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.uber.org/zap"

	"github.com/diillson/cwlogs-retention-go/internal/domain/entity"
	"github.com/diillson/cwlogs-retention-go/internal/domain/repository"
)

// CloudWatchLogsAPI é o subconjunto do cliente cloudwatchlogs usado aqui.
type CloudWatchLogsAPI interface {
	DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	PutRetentionPolicy(ctx context.Context, params *cloudwatchlogs.PutRetentionPolicyInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error)
}

// STSAPI covers the identity lookup used for report headers.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// EC2RegionsAPI covers region discovery for --all-regions.
type EC2RegionsAPI interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// S3PutObjectAPI covers report uploads.
type S3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// AWSRepositoryImpl implementa o AWSRepository com cache de clientes.
type AWSRepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
	logger      *zap.Logger
}

// NewAWSRepository cria uma nova implementação do AWSRepository.
func NewAWSRepository(logger *zap.Logger) repository.AWSRepository {
	return newAWSRepository(logger)
}

func newAWSRepository(logger *zap.Logger) *AWSRepositoryImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AWSRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
		logger:      logger.Named("aws"),
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func clientKey(profile, region, service string) string {
	return fmt.Sprintf("%s-%s-%s", profile, region, service)
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, region, service string) (interface{}, error) {
	cacheKey := clientKey(profile, region, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case "cloudwatchlogs":
		client = cloudwatchlogs.NewFromConfig(regionalCfg)
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "ec2":
		client = ec2.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

func (r *AWSRepositoryImpl) logsClient(ctx context.Context, profile, region string) (CloudWatchLogsAPI, error) {
	client, err := r.getServiceClient(ctx, profile, region, "cloudwatchlogs")
	if err != nil {
		return nil, err
	}
	cwl, ok := client.(CloudWatchLogsAPI)
	if !ok {
		return nil, fmt.Errorf("unexpected cloudwatchlogs client type %T", client)
	}
	return cwl, nil
}

// GetDefaultRegion retorna a região resolvida pela cadeia padrão do SDK.
func (r *AWSRepositoryImpl) GetDefaultRegion(ctx context.Context, profile string) (string, error) {
	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return "", err
	}
	return cfg.Region, nil
}

func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context, profile string) (string, error) {
	client, err := r.getServiceClient(ctx, profile, "us-east-1", "sts")
	if err != nil {
		return "", err
	}
	stsClient, ok := client.(STSAPI)
	if !ok {
		return "", fmt.Errorf("unexpected sts client type %T", client)
	}

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID for profile %q: %w", profile, err)
	}
	return aws.ToString(result.Account), nil
}

// GetAccessibleRegions lista as regiões habilitadas para a conta.
func (r *AWSRepositoryImpl) GetAccessibleRegions(ctx context.Context, profile string) ([]string, error) {
	client, err := r.getServiceClient(ctx, profile, "us-east-1", "ec2")
	if err != nil {
		return nil, fmt.Errorf("could not create EC2 client to list regions: %w", err)
	}
	ec2Client, ok := client.(EC2RegionsAPI)
	if !ok {
		return nil, fmt.Errorf("unexpected ec2 client type %T", client)
	}

	regionsOutput, err := ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{AllRegions: aws.Bool(false)})
	if err != nil {
		return nil, fmt.Errorf("describing regions: %w", classifyError(err))
	}

	accessibleRegions := make([]string, 0, len(regionsOutput.Regions))
	for _, region := range regionsOutput.Regions {
		accessibleRegions = append(accessibleRegions, aws.ToString(region.RegionName))
	}
	sort.Strings(accessibleRegions)
	return accessibleRegions, nil
}

// DescribeLogGroupsPage busca uma única página de log groups.
// A paginação fica a cargo do chamador; o paginator do SDK não é usado para
// que o limite de páginas e o cursor sejam controlados pelo use case.
func (r *AWSRepositoryImpl) DescribeLogGroupsPage(ctx context.Context, profile, region string, req repository.LogGroupPageRequest) (entity.LogGroupPage, error) {
	client, err := r.logsClient(ctx, profile, region)
	if err != nil {
		return entity.LogGroupPage{}, err
	}

	input := &cloudwatchlogs.DescribeLogGroupsInput{
		NextToken: req.NextToken,
	}
	if req.Limit > 0 {
		input.Limit = aws.Int32(req.Limit)
	}
	if req.Prefix != "" {
		input.LogGroupNamePrefix = aws.String(req.Prefix)
	}

	out, err := client.DescribeLogGroups(ctx, input)
	if err != nil {
		r.logger.Debug("DescribeLogGroups failed",
			zap.String("profile", profile), zap.String("region", region), zap.Error(err))
		return entity.LogGroupPage{}, fmt.Errorf("describing log groups in %s: %w", region, classifyError(err))
	}

	page := entity.LogGroupPage{
		LogGroups: make([]entity.LogGroup, 0, len(out.LogGroups)),
		NextToken: out.NextToken,
	}
	for _, lg := range out.LogGroups {
		page.LogGroups = append(page.LogGroups, toLogGroup(lg))
	}

	r.logger.Debug("DescribeLogGroups",
		zap.String("profile", profile),
		zap.String("region", region),
		zap.Int("log_groups", len(page.LogGroups)),
		zap.Bool("has_next", page.HasNext()),
	)
	return page, nil
}

// PutRetentionPolicy define a retenção (em dias) de um log group.
func (r *AWSRepositoryImpl) PutRetentionPolicy(ctx context.Context, profile, region, logGroupName string, days int) error {
	client, err := r.logsClient(ctx, profile, region)
	if err != nil {
		return err
	}

	_, err = client.PutRetentionPolicy(ctx, &cloudwatchlogs.PutRetentionPolicyInput{
		LogGroupName:    aws.String(logGroupName),
		RetentionInDays: aws.Int32(int32(days)),
	})
	if err != nil {
		r.logger.Debug("PutRetentionPolicy failed",
			zap.String("region", region), zap.String("log_group", logGroupName), zap.Error(err))
		return fmt.Errorf("setting retention on %s: %w", logGroupName, classifyError(err))
	}

	r.logger.Debug("PutRetentionPolicy",
		zap.String("region", region), zap.String("log_group", logGroupName), zap.Int("days", days))
	return nil
}

// UploadReport envia um relatório exportado para o bucket S3 informado.
func (r *AWSRepositoryImpl) UploadReport(ctx context.Context, profile, bucket, key, filePath string) error {
	client, err := r.getServiceClient(ctx, profile, "", "s3")
	if err != nil {
		return err
	}
	s3Client, ok := client.(S3PutObjectAPI)
	if !ok {
		return fmt.Errorf("unexpected s3 client type %T", client)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening report %s: %w", filePath, err)
	}
	defer f.Close()

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("uploading report to s3://%s/%s: %w", bucket, key, classifyError(err))
	}
	return nil
}

func toLogGroup(lg cwlTypes.LogGroup) entity.LogGroup {
	out := entity.LogGroup{
		Name:            aws.ToString(lg.LogGroupName),
		ARN:             aws.ToString(lg.Arn),
		RetentionInDays: lg.RetentionInDays,
		StoredBytes:     aws.ToInt64(lg.StoredBytes),
	}
	if lg.CreationTime != nil {
		out.CreationTime = time.UnixMilli(*lg.CreationTime).UTC()
	}
	return out
}
