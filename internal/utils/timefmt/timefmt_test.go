package timefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToIST(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want string
	}{
		{name: "UTC timestamp", iso: "2025-11-07T13:36:00Z", want: "07 Nov 2025, 07:06 PM IST"},
		{name: "Offset timestamp", iso: "2025-11-07T13:36:00+00:00", want: "07 Nov 2025, 07:06 PM IST"},
		{name: "Morning hours", iso: "2024-01-01T00:00:00Z", want: "01 Jan 2024, 05:30 AM IST"},
		{name: "Empty", iso: "", want: "N/A"},
		{name: "Not available", iso: "N/A", want: "N/A"},
		{name: "Unparseable passes through", iso: "yesterday", want: "yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToIST(tt.iso))
		})
	}
}
