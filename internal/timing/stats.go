package timing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned when a log holds no samples.
	ErrEmpty = errors.New("timing: no samples")
	// ErrNonNumeric is returned when a log line is not a number.
	ErrNonNumeric = errors.New("timing: non-numeric data")
)

// Summary describes a timing log.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // population standard deviation
}

// Summarize reads one number per line. Blank lines are skipped.
func Summarize(r io.Reader) (Summary, error) {
	var values []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Summary{}, fmt.Errorf("%w: line %d %q", ErrNonNumeric, line, text)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return Summary{}, fmt.Errorf("read timing log: %w", err)
	}
	return SummarizeValues(values)
}

// SummarizeValues computes the summary of values in two passes.
func SummarizeValues(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmpty
	}
	var total float64
	for _, v := range values {
		total += v
	}
	n := float64(len(values))
	mean := total / n

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return Summary{
		Count:  len(values),
		Mean:   mean,
		StdDev: math.Sqrt(variance / n),
	}, nil
}

// String prints the summary with twelve decimals and grouped thousands.
func (s Summary) String() string {
	return fmt.Sprintf("There were %d numbers in the file.\naverage %s\nstandard deviation %s\n",
		s.Count, groupThousands(s.Mean), groupThousands(s.StdDev))
}

func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 12, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + "." + frac
}
