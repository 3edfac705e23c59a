// Command terrain-gen generates heightfields without a window, appends their
// timings and writes the requested exports locally or to S3.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/aws/aws-sdk-go/aws/session"

	"heightgen/internal/batch"
	"heightgen/internal/cloud"
	"heightgen/internal/config"
	"heightgen/internal/export"
	"heightgen/internal/terrain"
	"heightgen/internal/timing"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("terrain-gen: ")

	set := flag.CommandLine
	runFlags := config.BindRunFlags(set)
	count := flag.Int("batch", 1, "number of fields, seeded seed, seed+1, ...")
	workers := flag.Int("workers", 0, "concurrent generators for -batch (0 uses every CPU)")
	out := flag.String("out", "", "local export directory (overrides the config)")
	asJSON := flag.Bool("json", false, "write JSON heights")
	asPNG := flag.Bool("png", false, "write a colour PNG")
	asTIFF := flag.Bool("tiff", false, "write a 16-bit TIFF heightmap")
	bucket := flag.String("s3-bucket", "", "upload exports to this S3 bucket instead of -out")
	prefix := flag.String("s3-prefix", "", "S3 key prefix")
	region := flag.String("region", "", "AWS region (overrides the config)")
	table := flag.String("dynamo-table", "", "also record timings in this DynamoDB table")
	flag.Parse()

	run, err := runFlags.Resolve(set, nil)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			run.Export.Dir = *out
		case "json":
			run.Export.JSON = *asJSON
		case "png":
			run.Export.PNG = *asPNG
		case "tiff":
			run.Export.TIFF = *asTIFF
		case "s3-bucket":
			run.Export.S3Bucket = *bucket
		case "s3-prefix":
			run.Export.S3Prefix = *prefix
		case "region":
			run.Export.Region = *region
		case "dynamo-table":
			run.Export.DynamoTable = *table
		}
	})
	if *count < 1 {
		log.Fatalf("-batch %d must be at least 1", *count)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := generate(ctx, run, *count, *workers); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, run config.RunConfig, count, workers int) error {
	algo, err := run.AlgorithmValue()
	if err != nil {
		return err
	}
	if err := terrain.CheckDegenerate(run.GridSize()); err != nil {
		log.Printf("warning: %v", err)
	}

	rec, store, err := sinks(run)
	if err != nil {
		return err
	}

	base := batch.Job{Algorithm: algo, Size: run.GridSize(), Step: run.Step, Options: run.Options()}
	results, err := batch.Run(ctx, batch.Seeds(base, run.Seed, count), workers, rec)
	if err != nil {
		return err
	}

	formats := export.Formats{JSON: run.Export.JSON, PNG: run.Export.PNG, TIFF: run.Export.TIFF}
	for _, res := range results {
		lo, hi := res.Field.MinMax()
		log.Printf("%s size=%d seed=%d in %v, heights %.3f..%.3f",
			res.Sample.Algorithm, res.Sample.Size, res.Sample.Seed, res.Sample.Elapsed, lo, hi)
		if !formats.Any() {
			continue
		}
		name := fmt.Sprintf("%s-%d-%d", algo, res.Job.Size, res.Job.Seed)
		names, err := export.Snapshot(ctx, store, name, res.Field, formats)
		if err != nil {
			return err
		}
		log.Printf("wrote %v to %s", names, store)
	}
	return nil
}

// sinks builds the timing recorder and export store the run asks for.
func sinks(run config.RunConfig) (timing.Recorder, export.Store, error) {
	logFS, logName, err := config.HostFile(run.TimingLog)
	if err != nil {
		return nil, nil, err
	}
	rec := timing.Multi{timing.NewFileLog(logFS, logName)}

	exp := run.Export
	var sess *session.Session
	if exp.S3Bucket != "" || exp.DynamoTable != "" {
		if sess, err = cloud.NewSession(exp.Region); err != nil {
			return nil, nil, err
		}
	}
	if exp.DynamoTable != "" {
		rec = append(rec, cloud.NewTimingTable(sess, exp.DynamoTable))
	}
	if exp.S3Bucket != "" {
		return rec, cloud.NewS3Store(sess, exp.S3Bucket, exp.S3Prefix), nil
	}

	fs, err := config.HostDir(exp.Dir)
	if err != nil {
		return nil, nil, err
	}
	return rec, localStore{export.NewFSStore(fs, ""), exp.Dir}, nil
}

// localStore names its directory in log lines.
type localStore struct {
	*export.FSStore
	dir string
}

func (s localStore) String() string { return s.dir }
