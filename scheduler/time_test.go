package scheduler

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	for v, want := range map[float64]Time{
		0:     0,
		1:     100,
		0.01:  1,
		2.5:   250,
		12.34: 1234,
		0.1:   10,
		0.3:   30,
	} {
		got, err := ParseTime(v)
		require.NoError(t, err, v)
		assert.Equal(t, want, got, "value %v", v)
	}

	for _, v := range []float64{0.001, 1.005, math.NaN(), math.Inf(1)} {
		_, err := ParseTime(v)
		assert.Error(t, err, "value %v", v)
	}
}

func TestTimeFormatting(t *testing.T) {
	assert.Equal(t, "2.50", Time(250).String())
	assert.Equal(t, 0.07, Time(7).Float64())

	data, err := json.Marshal(struct {
		At Time `json:"at"`
	}{At: 1234})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":12.34}`, string(data))

	var decoded struct {
		At Time `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":3.5}`), &decoded))
	assert.Equal(t, Time(350), decoded.At)
	assert.Error(t, json.Unmarshal([]byte(`{"at":3.555}`), &decoded))
}

func TestCompareIDs(t *testing.T) {
	assert.Equal(t, -1, CompareIDs("P2", "P10"))
	assert.Equal(t, 1, CompareIDs("10", "9"))
	assert.Equal(t, -1, CompareIDs("a", "b"))
	assert.Equal(t, 0, CompareIDs("job-7", "job-7"))
	assert.Equal(t, -1, CompareIDs("P", "P1"))
	assert.NotEqual(t, 0, CompareIDs("01", "1"))
	assert.Equal(t, -CompareIDs("01", "1"), CompareIDs("1", "01"))
}
