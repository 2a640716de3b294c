package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
	"github.com/opscart/vm-cost-optimizer/pkg/pricing"
)

const metricWindow = 15 * time.Minute

// AWSSource collects snapshots for running EC2 instances, with CPU taken
// from CloudWatch and memory from the CloudWatch agent where present.
type AWSSource struct {
	ec2Client *ec2.Client
	cwClient  *cloudwatch.Client
	prices    *pricing.Table
	region    string
}

// NewAWSSource creates a source using the default AWS credential chain
func NewAWSSource(ctx context.Context, region string, prices *pricing.Table) (*AWSSource, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return &AWSSource{
		ec2Client: ec2.NewFromConfig(cfg),
		cwClient:  cloudwatch.NewFromConfig(cfg),
		prices:    prices,
		region:    region,
	}, nil
}

func (s *AWSSource) Name() string {
	return "aws"
}

func (s *AWSSource) IsAvailable(ctx context.Context) bool {
	_, err := s.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		MaxResults: aws.Int32(5),
	})
	return err == nil
}

// Collect lists running instances and attaches usage and cost estimates.
// A VM whose metrics cannot be fetched still yields a snapshot with
// synthesized usage, so one broken agent never hides the instance.
func (s *AWSSource) Collect(ctx context.Context) ([]models.VMSnapshot, error) {
	filter := ec2types.Filter{
		Name:   aws.String("instance-state-name"),
		Values: []string{"running"},
	}

	result, err := s.ec2Client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{filter},
	})
	if err != nil {
		return nil, fmt.Errorf("error querying EC2 instances: %w", err)
	}

	snapshots := []models.VMSnapshot{}

	for _, reservation := range result.Reservations {
		for _, instance := range reservation.Instances {
			instanceID := aws.ToString(instance.InstanceId)
			instanceType := string(instance.InstanceType)

			cpu, err := s.getMetric(ctx, instanceID, "AWS/EC2", "CPUUtilization")
			if err != nil {
				cpu = fallbackUsage()
			}

			// Memory needs the CloudWatch agent; most fleets only have it
			// on some instances
			mem, err := s.getMetric(ctx, instanceID, "CWAgent", "mem_used_percent")
			if err != nil {
				mem = fallbackUsage()
			}

			cost, _ := s.prices.MonthlyCost(models.ProviderAWS, instanceType)

			snapshots = append(snapshots, models.VMSnapshot{
				ID:          instanceID,
				Type:        instanceType,
				CPUUsage:    cpu,
				MemoryUsage: mem,
				Cost:        cost,
			})
		}
	}

	return snapshots, nil
}

func (s *AWSSource) getMetric(ctx context.Context, instanceID, namespace, metricName string) (float64, error) {
	now := time.Now()

	resp, err := s.cwClient.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(namespace),
		MetricName: aws.String(metricName),
		Dimensions: []cwtypes.Dimension{
			{
				Name:  aws.String("InstanceId"),
				Value: aws.String(instanceID),
			},
		},
		StartTime:  aws.Time(now.Add(-metricWindow)),
		EndTime:    aws.Time(now),
		Period:     aws.Int32(int32(metricWindow.Seconds())),
		Statistics: []cwtypes.Statistic{cwtypes.StatisticAverage},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get CloudWatch metric %s for %s: %w", metricName, instanceID, err)
	}

	if len(resp.Datapoints) == 0 || resp.Datapoints[0].Average == nil {
		return 0, fmt.Errorf("no %s datapoints for %s", metricName, instanceID)
	}

	return *resp.Datapoints[0].Average, nil
}
