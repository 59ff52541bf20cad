package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"42", 42, false},
		{" 42.5% ", 42.5, false},
		{"0", 0, false},
		{"100", 100, false},
		{"100.1", 0, true},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"lots", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePercent(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateOptionalDay(t *testing.T) {
	assert.NoError(t, validateOptionalDay(""))
	assert.NoError(t, validateOptionalDay("2024-01-31"))
	assert.NoError(t, validateOptionalDay("31/01/2024"))
	assert.Error(t, validateOptionalDay("someday"))
}

func TestManualEntryInput_Request(t *testing.T) {
	in := manualEntryInput{Percent: "65", Day: "05/01/2024", Author: " ana ", Note: "after hydrotest"}
	req, err := in.request("svc-1")
	require.NoError(t, err)

	assert.Equal(t, "svc-1", req.ServiceID)
	assert.Equal(t, 65.0, req.Percent)
	require.NotNil(t, req.Day)
	assert.True(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC).Equal(*req.Day))
	assert.Equal(t, "ana", req.Author)
	assert.Equal(t, "after hydrotest", req.Description)
	assert.Nil(t, req.At)
}

func TestManualEntryInput_RequestRejectsBadValues(t *testing.T) {
	_, err := manualEntryInput{Percent: "abc"}.request("svc")
	assert.Error(t, err)

	_, err = manualEntryInput{Percent: "10", Day: "never"}.request("svc")
	assert.Error(t, err)
}

func TestManualEntryForm_Builds(t *testing.T) {
	in := manualEntryInput{}
	form := manualEntryForm("Clean tank", 20, &in)
	assert.NotNil(t, form)
}
