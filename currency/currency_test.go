package currency

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		units int64
	}{
		{"0", 0},
		{"1", 10000},
		{"1.5", 15000},
		{"1.50", 15000},
		{"1.500", 15000},
		{"1.5000", 15000},
		{"-1.5", -15000},
		{"-1.50", -15000},
		{"-1.500", -15000},
		{"-1.5000", -15000},
		{"1.0005", 10005},
		{"1.0050", 10050},
		{"1.0500", 10500},
		{"-0.5", -5000},
		{"-0.0001", -1},
		{"+2.25", 22500},
		{"7.", 70000},
		{"922337203685477.5807", math.MaxInt64},
		{"-922337203685477.5808", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, New(tt.units), got)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", ".", "abc", "1.2.3", "1.00001", "1.-5", "1.+5", "-.5", " 1", "1,5", "0x10"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestParseOverflow(t *testing.T) {
	for _, in := range []string{"922337203685478", "922337203685477.5808", "-922337203685477.5809", "99999999999999999999"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrOverflow)
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		units int64
		want  string
	}{
		{0, "0.0000"},
		{15000, "1.5000"},
		{-15000, "-1.5000"},
		{10500, "1.0500"},
		{-10500, "-1.0500"},
		{10050, "1.0050"},
		{-10050, "-1.0050"},
		{10005, "1.0005"},
		{-10005, "-1.0005"},
		{-5000, "-0.5000"},
		{-1, "-0.0001"},
		{math.MaxInt64, "922337203685477.5807"},
		{math.MinInt64, "-922337203685477.5808"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.units).String())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{"0", "1.5", "-1.5", "1.0005", "-0.0001"} {
		t.Run(in, func(t *testing.T) {
			rendered := MustParse(in).String()
			again, err := Parse(rendered)
			require.NoError(t, err)
			assert.Equal(t, rendered, again.String())
		})
	}
}

func TestAgreesWithDecimal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		c := New(rng.Int63n(2_000_000_000) - 1_000_000_000)
		d := c.Decimal()

		assert.Equal(t, d.StringFixed(Precision), c.String())

		parsed, err := Parse(d.String())
		require.NoError(t, err, d.String())
		assert.Equal(t, c, parsed)
	}

	assert.True(t, decimal.RequireFromString("-12.3456").Equal(MustParse("-12.3456").Decimal()))
}

func TestArithmetic(t *testing.T) {
	a := New(15000)
	b := New(-15000)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, Zero, sum)

	sum, err = a.Add(a)
	require.NoError(t, err)
	assert.Equal(t, New(30000), sum)

	diff, err := New(30000).Sub(a)
	require.NoError(t, err)
	assert.Equal(t, a, diff)

	diff, err = diff.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, New(30000), diff)

	neg, err := a.Neg()
	require.NoError(t, err)
	assert.Equal(t, b, neg)
	neg, err = b.Neg()
	require.NoError(t, err)
	assert.Equal(t, a, neg)
}

func TestArithmeticOverflow(t *testing.T) {
	max := New(math.MaxInt64)
	min := New(math.MinInt64)

	_, err := max.Add(New(1))
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = min.Add(New(-1))
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = min.Sub(New(1))
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = max.Sub(New(-1))
	assert.ErrorIs(t, err, ErrOverflow)

	assert.Equal(t, max, max.SaturatingAdd(New(1)))
	assert.Equal(t, min, min.SaturatingAdd(New(-1)))

	_, err = min.Neg()
	assert.ErrorIs(t, err, ErrOverflow)
	neg, err := max.Neg()
	require.NoError(t, err)
	assert.Equal(t, New(math.MinInt64+1), neg)
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, New(1).Cmp(New(2)))
	assert.Equal(t, 0, New(2).Cmp(New(2)))
	assert.Equal(t, 1, New(3).Cmp(New(2)))
	assert.True(t, New(-1).IsNegative())
	assert.True(t, Zero.IsZero())
}

func TestTextMarshaling(t *testing.T) {
	type payload struct {
		Amount Currency `json:"amount"`
	}

	data, err := json.Marshal(payload{Amount: MustParse("-0.25")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"-0.2500"}`, string(data))

	var decoded payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, MustParse("-0.25"), decoded.Amount)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"amount":"1.23456"}`), &decoded), ErrInvalidFormat)
}
