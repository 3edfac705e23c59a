package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/guregu/dynamo"

	"heightgen/internal/timing"
)

// TimingItem is the DynamoDB shape of a timing sample. Samples are
// partitioned by algorithm and sorted by start time.
type TimingItem struct {
	Algorithm string  `dynamo:"algorithm,hash"`
	At        int64   `dynamo:"at,range"` // unix nanoseconds
	Size      int     `dynamo:"size"`
	Seed      int64   `dynamo:"seed"`
	Seconds   float64 `dynamo:"seconds"`
}

func itemFromSample(s timing.Sample) TimingItem {
	return TimingItem{
		Algorithm: s.Algorithm,
		At:        s.At.UnixNano(),
		Size:      s.Size,
		Seed:      s.Seed,
		Seconds:   s.Seconds(),
	}
}

func (i TimingItem) sample() timing.Sample {
	return timing.Sample{
		Algorithm: i.Algorithm,
		Size:      i.Size,
		Seed:      i.Seed,
		Elapsed:   time.Duration(i.Seconds * float64(time.Second)),
		At:        time.Unix(0, i.At),
	}
}

// TimingTable records timing samples in DynamoDB.
type TimingTable struct {
	table dynamo.Table
}

// NewTimingTable opens table through a real DynamoDB client.
func NewTimingTable(sess *session.Session, table string) *TimingTable {
	return NewTimingTableFromIface(dynamodb.New(sess), table)
}

// NewTimingTableFromIface wraps any DynamoDB implementation.
func NewTimingTableFromIface(svc dynamodbiface.DynamoDBAPI, table string) *TimingTable {
	return &TimingTable{table: dynamo.NewFromIface(svc).Table(table)}
}

// Record implements timing.Recorder.
func (t *TimingTable) Record(ctx context.Context, s timing.Sample) error {
	if err := t.table.Put(itemFromSample(s)).RunWithContext(ctx); err != nil {
		return fmt.Errorf("put timing sample: %w", err)
	}
	return nil
}

// Samples reads every sample recorded for algorithm, oldest first.
func (t *TimingTable) Samples(ctx context.Context, algorithm string) ([]timing.Sample, error) {
	var items []TimingItem
	if err := t.table.Get("algorithm", algorithm).Order(dynamo.Ascending).AllWithContext(ctx, &items); err != nil {
		return nil, fmt.Errorf("query timing samples: %w", err)
	}
	samples := make([]timing.Sample, len(items))
	for i, item := range items {
		samples[i] = item.sample()
	}
	return samples, nil
}

// Summary reads the samples recorded for algorithm and summarises their
// elapsed seconds the same way timing-stats summarises a log file.
func (t *TimingTable) Summary(ctx context.Context, algorithm string) (timing.Summary, error) {
	samples, err := t.Samples(ctx, algorithm)
	if err != nil {
		return timing.Summary{}, err
	}
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Seconds()
	}
	return timing.SummarizeValues(values)
}
