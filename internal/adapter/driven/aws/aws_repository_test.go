package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwlTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/cwlogs-retention-go/internal/domain/repository"
	"github.com/diillson/cwlogs-retention-go/internal/shared/types"
)

type fakeLogsClient struct {
	describeInputs []*cloudwatchlogs.DescribeLogGroupsInput
	describeOut    *cloudwatchlogs.DescribeLogGroupsOutput
	describeErr    error

	putInputs []*cloudwatchlogs.PutRetentionPolicyInput
	putErr    error
}

func (f *fakeLogsClient) DescribeLogGroups(_ context.Context, in *cloudwatchlogs.DescribeLogGroupsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	f.describeInputs = append(f.describeInputs, in)
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return f.describeOut, nil
}

func (f *fakeLogsClient) PutRetentionPolicy(_ context.Context, in *cloudwatchlogs.PutRetentionPolicyInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.PutRetentionPolicyOutput, error) {
	f.putInputs = append(f.putInputs, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &cloudwatchlogs.PutRetentionPolicyOutput{}, nil
}

type fakeSTS struct{ account string }

func (f fakeSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return &sts.GetCallerIdentityOutput{Account: aws.String(f.account)}, nil
}

type fakeEC2 struct{ regions []string }

func (f fakeEC2) DescribeRegions(context.Context, *ec2.DescribeRegionsInput, ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	out := &ec2.DescribeRegionsOutput{}
	for _, r := range f.regions {
		out.Regions = append(out.Regions, ec2Types.Region{RegionName: aws.String(r)})
	}
	return out, nil
}

func repoWithClient(profile, region, service string, client interface{}) *AWSRepositoryImpl {
	r := newAWSRepository(nil)
	r.clientCache[clientKey(profile, region, service)] = client
	return r
}

func TestDescribeLogGroupsPage_MapsInputAndOutput(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeLogsClient{
		describeOut: &cloudwatchlogs.DescribeLogGroupsOutput{
			LogGroups: []cwlTypes.LogGroup{
				{
					LogGroupName:    aws.String("/aws/lambda/orders"),
					Arn:             aws.String("arn:aws:logs:us-east-1:123:log-group:/aws/lambda/orders:*"),
					RetentionInDays: aws.Int32(7),
					StoredBytes:     aws.Int64(2048),
					CreationTime:    aws.Int64(created.UnixMilli()),
				},
				{LogGroupName: aws.String("/ecs/api")},
			},
			NextToken: aws.String("token-2"),
		},
	}
	r := repoWithClient("dev", "us-east-1", "cloudwatchlogs", fake)

	page, err := r.DescribeLogGroupsPage(context.Background(), "dev", "us-east-1", repository.LogGroupPageRequest{
		Limit:     50,
		NextToken: aws.String("token-1"),
		Prefix:    "/",
	})
	require.NoError(t, err)

	require.Len(t, fake.describeInputs, 1)
	in := fake.describeInputs[0]
	assert.Equal(t, int32(50), aws.ToInt32(in.Limit))
	assert.Equal(t, "token-1", aws.ToString(in.NextToken))
	assert.Equal(t, "/", aws.ToString(in.LogGroupNamePrefix))

	require.Len(t, page.LogGroups, 2)
	assert.True(t, page.HasNext())
	assert.Equal(t, "token-2", aws.ToString(page.NextToken))

	first := page.LogGroups[0]
	assert.Equal(t, "/aws/lambda/orders", first.Name)
	require.NotNil(t, first.RetentionInDays)
	assert.Equal(t, int32(7), *first.RetentionInDays)
	assert.Equal(t, int64(2048), first.StoredBytes)
	assert.Equal(t, created, first.CreationTime)

	second := page.LogGroups[1]
	assert.Equal(t, "/ecs/api", second.Name)
	assert.Nil(t, second.RetentionInDays)
	assert.True(t, second.CreationTime.IsZero())
}

func TestDescribeLogGroupsPage_OmitsEmptyPrefix(t *testing.T) {
	fake := &fakeLogsClient{describeOut: &cloudwatchlogs.DescribeLogGroupsOutput{}}
	r := repoWithClient("", "eu-west-1", "cloudwatchlogs", fake)

	page, err := r.DescribeLogGroupsPage(context.Background(), "", "eu-west-1", repository.LogGroupPageRequest{Limit: 10})
	require.NoError(t, err)

	assert.Nil(t, fake.describeInputs[0].LogGroupNamePrefix)
	assert.Nil(t, fake.describeInputs[0].NextToken)
	assert.Empty(t, page.LogGroups)
	assert.False(t, page.HasNext())
}

func TestDescribeLogGroupsPage_ClassifiesThrottling(t *testing.T) {
	fake := &fakeLogsClient{describeErr: &smithy.GenericAPIError{Code: "ThrottlingException", Message: "Rate exceeded"}}
	r := repoWithClient("", "us-east-1", "cloudwatchlogs", fake)

	_, err := r.DescribeLogGroupsPage(context.Background(), "", "us-east-1", repository.LogGroupPageRequest{Limit: 50})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrRateLimited)
}

func TestPutRetentionPolicy(t *testing.T) {
	fake := &fakeLogsClient{}
	r := repoWithClient("dev", "us-east-1", "cloudwatchlogs", fake)

	err := r.PutRetentionPolicy(context.Background(), "dev", "us-east-1", "/aws/lambda/orders", 30)
	require.NoError(t, err)

	require.Len(t, fake.putInputs, 1)
	assert.Equal(t, "/aws/lambda/orders", aws.ToString(fake.putInputs[0].LogGroupName))
	assert.Equal(t, int32(30), aws.ToInt32(fake.putInputs[0].RetentionInDays))
}

func TestPutRetentionPolicy_NotFound(t *testing.T) {
	fake := &fakeLogsClient{putErr: &cwlTypes.ResourceNotFoundException{Message: aws.String("The specified log group does not exist.")}}
	r := repoWithClient("dev", "us-east-1", "cloudwatchlogs", fake)

	err := r.PutRetentionPolicy(context.Background(), "dev", "us-east-1", "/gone", 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, err.Error(), "/gone")
}

func TestGetAccountIDAndRegions(t *testing.T) {
	r := newAWSRepository(nil)
	r.clientCache[clientKey("dev", "us-east-1", "sts")] = fakeSTS{account: "123456789012"}
	r.clientCache[clientKey("dev", "us-east-1", "ec2")] = fakeEC2{regions: []string{"us-west-2", "eu-west-1", "us-east-1"}}

	account, err := r.GetAccountID(context.Background(), "dev")
	require.NoError(t, err)
	assert.Equal(t, "123456789012", account)

	regions, err := r.GetAccessibleRegions(context.Background(), "dev")
	require.NoError(t, err)
	assert.Equal(t, []string{"eu-west-1", "us-east-1", "us-west-2"}, regions)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", &cwlTypes.ResourceNotFoundException{Message: aws.String("missing")}, types.ErrNotFound},
		{"service unavailable", &cwlTypes.ServiceUnavailableException{Message: aws.String("down")}, types.ErrRemoteUnavailable},
		{"invalid parameter", &cwlTypes.InvalidParameterException{Message: aws.String("bad days")}, types.ErrInvalidRetentionValue},
		{"throttling", &smithy.GenericAPIError{Code: "ThrottlingException"}, types.ErrRateLimited},
		{"too many requests", &smithy.GenericAPIError{Code: "TooManyRequestsException"}, types.ErrRateLimited},
		{"internal failure", &smithy.GenericAPIError{Code: "InternalFailure"}, types.ErrRemoteUnavailable},
		{"network", &netTimeoutError{}, types.ErrRemoteUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.NoError(t, classifyError(nil))

	plain := errors.New("boom")
	assert.Same(t, plain, classifyError(plain))

	other := &smithy.GenericAPIError{Code: "AccessDeniedException"}
	assert.Equal(t, error(other), classifyError(other))
}

// netTimeoutError satisfies net.Error.
type netTimeoutError struct{}

func (netTimeoutError) Error() string   { return "i/o timeout" }
func (netTimeoutError) Timeout() bool   { return true }
func (netTimeoutError) Temporary() bool { return true }
