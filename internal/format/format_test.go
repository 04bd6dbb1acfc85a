package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	cases := []struct {
		name  string
		input uint64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"exact kb", 1024, "1.0 KB"},
		{"kilobytes", 2048, "2.0 KB"},
		{"megabytes", 5 * 1024 * 1024, "5.0 MB"},
		{"gigabytes", 3 * 1024 * 1024 * 1024, "3.0 GB"},
		{"terabytes", 2 * 1024 * 1024 * 1024 * 1024, "2.0 TB"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Bytes(tc.input))
		})
	}
}

func TestSpeed(t *testing.T) {
	cases := []struct {
		name  string
		input float64
		want  string
	}{
		{"zero", 0, "0 B/s"},
		{"negative clamps", -50, "0 B/s"},
		{"kilobytes", 1536, "1.5 KB/s"},
		{"megabytes", 2 * 1024 * 1024, "2.0 MB/s"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Speed(tc.input))
		})
	}
}

func TestNumber(t *testing.T) {
	cases := []struct {
		name  string
		input uint64
		want  string
	}{
		{"small", 7, "7"},
		{"three digits", 999, "999"},
		{"four digits", 1000, "1,000"},
		{"millions", 12345678, "12,345,678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Number(tc.input))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "34.5%", Percent(34.5))
	assert.Equal(t, "0.0%", Percent(0))
}

func TestUptime(t *testing.T) {
	cases := []struct {
		name  string
		input uint64
		want  string
	}{
		{"seconds", 42, "42s"},
		{"minutes", 125, "2m 5s"},
		{"hours", 3700, "1h 1m"},
		{"days", 90061, "1d 1h"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Uptime(tc.input))
		})
	}
}
