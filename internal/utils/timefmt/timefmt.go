package timefmt

import "time"

const istLayout = "02 Jan 2006, 03:04 PM IST"

var istOffset = 5*time.Hour + 30*time.Minute

// ToIST converts an RFC3339 timestamp into the human-readable IST form used
// throughout the report, e.g. "07 Nov 2025, 07:06 PM IST". Values that do not
// parse are returned unchanged; empty and "N/A" stay "N/A".
func ToIST(iso string) string {
	if iso == "" || iso == "N/A" {
		return "N/A"
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.UTC().Add(istOffset).Format(istLayout)
}
