package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityOf(t *testing.T) {
	assert.Less(t, priorityOf("DTSTAMP"), priorityOf("DTSTART"))
	assert.Less(t, priorityOf("SUMMARY"), priorityOf("DESCRIPTION"))
	assert.Equal(t, priorityX, priorityOf("X-MICROSOFT-CDO-BUSYSTATUS"))
	assert.Equal(t, priorityUnknown, priorityOf("SOME-UNKNOWN-PROP"))
	assert.Less(t, priorityOf("CLASS"), priorityX)
}
