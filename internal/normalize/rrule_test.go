package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

func TestRewriteRRule_CollapsesSetPosSingleByDay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "last friday of month",
			in:   "FREQ=MONTHLY;BYDAY=FR;BYSETPOS=-1",
			want: "FREQ=MONTHLY;BYDAY=-1FR",
		},
		{
			name: "second tuesday, clause order preserved otherwise",
			in:   "FREQ=MONTHLY;INTERVAL=1;BYSETPOS=2;BYDAY=TU;COUNT=12",
			want: "FREQ=MONTHLY;INTERVAL=1;BYDAY=2TU;COUNT=12",
		},
		{
			name: "multiple BYDAY weekdays are left untouched",
			in:   "FREQ=MONTHLY;BYDAY=MO,TU;BYSETPOS=1",
			want: "FREQ=MONTHLY;BYDAY=MO,TU;BYSETPOS=1",
		},
		{
			name: "no BYSETPOS passes through unchanged",
			in:   "FREQ=WEEKLY;BYDAY=MO,WE,FR",
			want: "FREQ=WEEKLY;BYDAY=MO,WE,FR",
		},
		{
			name: "no BYDAY passes through unchanged",
			in:   "FREQ=MONTHLY;BYSETPOS=1;BYMONTHDAY=15",
			want: "FREQ=MONTHLY;BYSETPOS=1;BYMONTHDAY=15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteRRule(tt.in)
			assert.Equal(t, tt.want, got)

			// The rewrite must stay valid RFC 5545 in either direction.
			_, err := rrule.StrToRRule(got)
			require.NoError(t, err)
		})
	}
}
