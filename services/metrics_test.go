// file: services/metrics_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudWatch struct {
	cloudwatchiface.CloudWatchAPI
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricDataWithContext(_ aws.Context, in *cloudwatch.PutMetricDataInput, _ ...request.Option) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, in)
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func TestCloudWatchPublisher_Publish(t *testing.T) {
	cw := &fakeCloudWatch{}
	p := NewCloudWatchPublisherWithClient(cw, "CateringAdmin")

	p.Publish(context.Background(), MetricUploadBytes, 2048, UnitBytes, map[string]string{"Bucket": "menu-images"})

	require.Len(t, cw.inputs, 1)
	in := cw.inputs[0]
	assert.Equal(t, "CateringAdmin", aws.StringValue(in.Namespace))
	require.Len(t, in.MetricData, 1)
	d := in.MetricData[0]
	assert.Equal(t, "UploadBytes", aws.StringValue(d.MetricName))
	assert.Equal(t, 2048.0, aws.Float64Value(d.Value))
	assert.Equal(t, "Bytes", aws.StringValue(d.Unit))
	require.Len(t, d.Dimensions, 1)
	assert.Equal(t, "menu-images", aws.StringValue(d.Dimensions[0].Value))
}

func TestCloudWatchPublisher_ErrorIsSwallowed(t *testing.T) {
	cw := &fakeCloudWatch{err: errors.New("throttled")}
	p := NewCloudWatchPublisherWithClient(cw, "CateringAdmin")

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), MetricFailedLogins, 1, UnitCount, nil)
	})
	assert.Len(t, cw.inputs, 1)
}
