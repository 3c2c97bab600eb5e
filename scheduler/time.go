package scheduler

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Time is a simulated instant or duration counted in hundredths of a time unit.
type Time int64

// TimeScale is the number of Time ticks per simulated time unit.
const TimeScale = 100

const precisionTolerance = 1e-6

// ParseTime converts a decimal time value into Time. Values carrying more than
// two decimal places are rejected.
func ParseTime(v float64) (Time, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("time value %v is not finite", v)
	}
	scaled := v * TimeScale
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > precisionTolerance {
		return 0, errors.Errorf("time value %v has more than two decimal places", v)
	}
	if math.Abs(rounded) > math.MaxInt64/2 {
		return 0, errors.Errorf("time value %v is out of range", v)
	}
	return Time(rounded), nil
}

// Units builds a Time from a whole number of time units.
func Units(n int64) Time {
	return Time(n * TimeScale)
}

func (t Time) Float64() float64 {
	return float64(t) / TimeScale
}

func (t Time) String() string {
	return strconv.FormatFloat(t.Float64(), 'f', 2, 64)
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(t.Float64(), 'f', -1, 64)), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return errors.Wrapf(err, "decode time %q", string(data))
	}
	parsed, err := ParseTime(v)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func minTime(a, b Time) Time {
	if a < b {
		return a
	}
	return b
}
