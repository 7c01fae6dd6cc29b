package normalize

// WindowsToIANA maps the Exchange/Outlook vendor timezone identifiers this
// proxy has observed on the wire to their IANA equivalents. The mapping is
// total on the keys it carries; any identifier not listed here passes
// through the rewrite unchanged, per spec.
var WindowsToIANA = map[string]string{
	"Eastern Standard Time":        "America/New_York",
	"US Eastern Standard Time":     "America/Indiana/Indianapolis",
	"Central Standard Time":        "America/Chicago",
	"Mountain Standard Time":       "America/Denver",
	"US Mountain Standard Time":    "America/Phoenix",
	"Pacific Standard Time":        "America/Los_Angeles",
	"Alaskan Standard Time":        "America/Anchorage",
	"Hawaiian Standard Time":       "Pacific/Honolulu",
	"Atlantic Standard Time":       "America/Halifax",
	"Newfoundland Standard Time":   "America/St_Johns",
	"Canada Central Standard Time": "America/Regina",
	"SA Pacific Standard Time":     "America/Bogota",
	"SA Eastern Standard Time":     "America/Cayenne",
	"Greenland Standard Time":      "America/Godthab",
	"Cape Verde Standard Time":     "Atlantic/Cape_Verde",
	"GMT Standard Time":            "Europe/London",
	"W. Europe Standard Time":      "Europe/Berlin",
	"Central Europe Standard Time": "Europe/Budapest",
	"Romance Standard Time":        "Europe/Paris",
	"Russian Standard Time":        "Europe/Moscow",
	"Morocco Standard Time":        "Africa/Casablanca",
	"South Africa Standard Time":   "Africa/Johannesburg",
	"Egypt Standard Time":          "Africa/Cairo",
	"Israel Standard Time":         "Asia/Jerusalem",
	"Arab Standard Time":           "Asia/Riyadh",
	"Iran Standard Time":           "Asia/Tehran",
	"Pakistan Standard Time":       "Asia/Karachi",
	"India Standard Time":          "Asia/Kolkata",
	"Bangladesh Standard Time":     "Asia/Dhaka",
	"Myanmar Standard Time":        "Asia/Yangon",
	"SE Asia Standard Time":        "Asia/Bangkok",
	"Singapore Standard Time":      "Asia/Singapore",
	"China Standard Time":          "Asia/Shanghai",
	"Korea Standard Time":          "Asia/Seoul",
	"Tokyo Standard Time":          "Asia/Tokyo",
	"AUS Eastern Standard Time":    "Australia/Sydney",
	"Cen. Australia Standard Time": "Australia/Adelaide",
	"W. Australia Standard Time":   "Australia/Perth",
	"New Zealand Standard Time":    "Pacific/Auckland",
	"Tonga Standard Time":          "Pacific/Tongatapu",
	"UTC":                          "UTC",
}

// MapTZID rewrites a source-vendor timezone identifier to its IANA
// equivalent, passing unknown identifiers through unchanged.
func MapTZID(tzid string) string {
	if iana, ok := WindowsToIANA[tzid]; ok {
		return iana
	}
	return tzid
}
