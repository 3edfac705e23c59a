// Command timing-stats prints the count, mean and standard deviation of a
// timing log written by terrain-view or terrain-gen.
//
//	timing-stats timing.txt
//	timing-stats -dynamo-table heightgen-timing -algorithm fault
//
// With no argument the file name is read from stdin. With -dynamo-table the
// samples recorded for -algorithm are read from DynamoDB instead.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	billy "gopkg.in/src-d/go-billy.v4"

	"heightgen/internal/cloud"
	"heightgen/internal/config"
	"heightgen/internal/terrain"
	"heightgen/internal/timing"
)

func main() {
	table := flag.String("dynamo-table", "", "summarise samples from this DynamoDB table instead of a file")
	algorithm := flag.String("algorithm", string(terrain.AlgorithmFault), "algorithm partition to read with -dynamo-table")
	region := flag.String("region", config.DefaultRunConfig().Export.Region, "AWS region for -dynamo-table")
	flag.Parse()

	var (
		s   timing.Summary
		err error
	)
	if *table != "" {
		s, err = summarizeTable(*region, *table, *algorithm)
	} else {
		s, err = summarizeHost(flag.Args())
	}
	if err != nil {
		fail(err)
	}
	fmt.Print(s)
}

func summarizeTable(region, table, algorithm string) (timing.Summary, error) {
	sess, err := cloud.NewSession(region)
	if err != nil {
		return timing.Summary{}, err
	}
	return cloud.NewTimingTable(sess, table).Summary(context.Background(), algorithm)
}

func summarizeHost(args []string) (timing.Summary, error) {
	name, err := fileName(args)
	if err != nil {
		return timing.Summary{}, err
	}
	fsys, base, err := config.HostFile(name)
	if err != nil {
		return timing.Summary{}, err
	}
	return summarizeFile(fsys, base)
}

// summarizeFile reads the timing log name from fsys.
func summarizeFile(fsys billy.Filesystem, name string) (timing.Summary, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return timing.Summary{}, err
	}
	defer f.Close()
	return timing.Summarize(f)
}

func fileName(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	fmt.Print("Enter a file name: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// message maps a failure to the line printed on stdout.
func message(err error) string {
	switch {
	case errors.Is(err, timing.ErrNonNumeric):
		return "Non-numeric data found in the file"
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return "An error occurred trying to read the file."
	default:
		return "An error has occurred"
	}
}

func fail(err error) {
	fmt.Println(message(err))
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
