// Package services file: services/metrics.go
package services

import (
	"context"
	"time"

	"catering-admin/logger"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"
)

// metric names published by the app
const (
	MetricUploadBytes      = "UploadBytes"
	MetricUploadFailures   = "UploadFailures"
	MetricFailedLogins     = "FailedLogins"
	MetricDashboardFailure = "DashboardReadFailures"
)

// CloudWatch units
const (
	UnitCount = cloudwatch.StandardUnitCount
	UnitBytes = cloudwatch.StandardUnitBytes
)

// MetricsPublisher records one data point. Failures are logged, never returned.
type MetricsPublisher interface {
	Publish(ctx context.Context, name string, value float64, unit string, dims map[string]string)
}

// NopPublisher drops every data point.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, float64, string, map[string]string) {}

// CloudWatchPublisher pushes data points with PutMetricData.
type CloudWatchPublisher struct {
	client    cloudwatchiface.CloudWatchAPI
	namespace string
}

// NewCloudWatchPublisher reuses a single CloudWatch client for all metrics calls.
func NewCloudWatchPublisher(sess *session.Session, namespace string) *CloudWatchPublisher {
	return NewCloudWatchPublisherWithClient(cloudwatch.New(sess), namespace)
}

// NewCloudWatchPublisherWithClient takes any CloudWatch client, mainly for tests.
func NewCloudWatchPublisherWithClient(client cloudwatchiface.CloudWatchAPI, namespace string) *CloudWatchPublisher {
	return &CloudWatchPublisher{client: client, namespace: namespace}
}

// Publish sends one datum.
func (p *CloudWatchPublisher) Publish(ctx context.Context, name string, value float64, unit string, dims map[string]string) {
	datum := &cloudwatch.MetricDatum{
		MetricName: aws.String(name),
		Timestamp:  aws.Time(time.Now()),
		Value:      aws.Float64(value),
		Unit:       aws.String(unit),
	}
	for k, v := range dims {
		datum.Dimensions = append(datum.Dimensions, &cloudwatch.Dimension{Name: aws.String(k), Value: aws.String(v)})
	}

	_, err := p.client.PutMetricDataWithContext(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(p.namespace),
		MetricData: []*cloudwatch.MetricDatum{datum},
	})
	if err != nil {
		logger.Error.Printf("[CloudWatchPublisher.Publish] CloudWatch metric failed (%s): %v", name, err)
	}
}
