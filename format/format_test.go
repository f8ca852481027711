package format

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0ms"},
		{999, "999ms"},
		{1000, "1.00s"},
		{1500, "1.50s"},
		{61234, "61.23s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(tt.ms))
		})
	}
}

func TestSize(t *testing.T) {
	assert.Equal(t, "0 B", Size(0))
	assert.Equal(t, "1023 B", Size(1023))
	assert.Equal(t, "1.00 KB", Size(1024))
	assert.Equal(t, "1.50 MB", Size(1024*1024*3/2))
	assert.Equal(t, "2.00 GB", Size(2*1024*1024*1024))
}

func TestStatusIndicator(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = saved }()

	tests := []struct {
		code int
		want StatusClass
	}{
		{200, ClassSuccess},
		{299, ClassSuccess},
		{301, ClassRedirect},
		{404, ClassClientError},
		{500, ClassServerError},
		{599, ClassServerError},
		{199, ClassUnknown},
		{600, ClassUnknown},
	}

	for _, tt := range tests {
		ind := StatusIndicator(tt.code)
		assert.Equal(t, tt.want, ind.Class, "code %d", tt.code)
		assert.Equal(t, tt.want, StatusClassOf(tt.code))
		assert.NotNil(t, ind.Color)
	}

	assert.Equal(t, "404", StatusIndicator(404).String())
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "OK", StatusMessage(200))
	assert.Equal(t, "Not Found", StatusMessage(404))
	assert.Equal(t, "Unknown Status", StatusMessage(799))
}

func TestParseHeaders(t *testing.T) {
	headers, err := ParseHeaders("Content-Type: application/json\n\n  X-Trace:abc:def \nAccept: */*")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Content-Type": "application/json",
		"X-Trace":      "abc:def",
		"Accept":       "*/*",
	}, headers)

	_, err = ParseHeaders("not a header")
	assert.Error(t, err)

	_, err = ParseHeaders(": value")
	assert.Error(t, err)
}
