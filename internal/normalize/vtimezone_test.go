package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawExchangeBlock = "BEGIN:VTIMEZONE\r\n" +
	"TZID:Eastern Standard Time\r\n" +
	"BEGIN:STANDARD\r\n" +
	"DTSTART:16010101T020000\r\n" +
	"TZOFFSETFROM:-0400\r\n" +
	"TZOFFSETTO:-0500\r\n" +
	"END:STANDARD\r\n" +
	"END:VTIMEZONE"

func TestRewriteVTimezoneBlock_RewritesTZIDLine(t *testing.T) {
	got := RewriteVTimezoneBlock(rawExchangeBlock)
	assert.Contains(t, got, "TZID:America/New_York")
	assert.NotContains(t, got, "Eastern Standard Time")
}

func TestBlockDeclaresTZID(t *testing.T) {
	rewritten := RewriteVTimezoneBlock(rawExchangeBlock)
	assert.True(t, BlockDeclaresTZID(rewritten, "America/New_York"))
	assert.False(t, BlockDeclaresTZID(rewritten, "America/Chicago"))
}

func TestInjectedVTimezoneTemplate_KnownZonesGetDSTRules(t *testing.T) {
	for _, tzid := range []string{"America/New_York", "America/Chicago", "America/Los_Angeles", "America/Indiana/Indianapolis"} {
		block := InjectedVTimezoneTemplate(tzid)
		assert.Contains(t, block, "TZID:"+tzid)
		assert.Contains(t, block, "BEGIN:DAYLIGHT")
		assert.Contains(t, block, "BEGIN:STANDARD")
		require.True(t, strings.HasPrefix(block, "BEGIN:VTIMEZONE"))
		require.True(t, strings.HasSuffix(block, "END:VTIMEZONE"))
	}
}

func TestInjectedVTimezoneTemplate_UsesZoneSpecificAbbreviations(t *testing.T) {
	cases := []struct {
		tzid             string
		stdName, dstName string
	}{
		{"America/New_York", "EST", "EDT"},
		{"America/Indiana/Indianapolis", "EST", "EDT"},
		{"America/Chicago", "CST", "CDT"},
		{"America/Los_Angeles", "PST", "PDT"},
	}

	for _, c := range cases {
		block := InjectedVTimezoneTemplate(c.tzid)
		assert.Contains(t, block, "TZNAME:"+c.stdName)
		assert.Contains(t, block, "TZNAME:"+c.dstName)
	}

	// Chicago and Los Angeles must not leak the Eastern abbreviations.
	chicago := InjectedVTimezoneTemplate("America/Chicago")
	assert.NotContains(t, chicago, "TZNAME:EST")
	assert.NotContains(t, chicago, "TZNAME:EDT")

	losAngeles := InjectedVTimezoneTemplate("America/Los_Angeles")
	assert.NotContains(t, losAngeles, "TZNAME:EST")
	assert.NotContains(t, losAngeles, "TZNAME:EDT")
}

func TestInjectedVTimezoneTemplate_UnknownZoneGetsPlaceholder(t *testing.T) {
	block := InjectedVTimezoneTemplate("Europe/Madrid")
	assert.Contains(t, block, "TZID:Europe/Madrid")
	assert.NotContains(t, block, "BEGIN:DAYLIGHT")
	assert.Contains(t, block, "TZOFFSETFROM:+0000")
}
