package builder

import "time"

// Raw form value layouts.
const (
	formDateLayout = "2006-01-02"
	formTimeLayout = "15:04"
)

// auctionDateLayout is the long en-ZA date used on every asset,
// e.g. "Saturday, 12 September 2026".
const auctionDateLayout = "Monday, 2 January 2006"

// FormatAuctionDate combines the raw date and time form values into the
// display string used by both the templates and the summary document,
// e.g. "Saturday, 12 September 2026 @ 11:00".
//
// Returns "" when either value is empty. Unparseable values are joined
// as-is rather than dropped, so a typo still shows up on the preview
// where the user can see it.
func FormatAuctionDate(dateStr, timeStr string) string {
	if dateStr == "" || timeStr == "" {
		return ""
	}

	t, err := time.Parse(formDateLayout+"T"+formTimeLayout, dateStr+"T"+timeStr)
	if err != nil {
		return dateStr + " @ " + timeStr
	}

	return t.Format(auctionDateLayout) + " @ " + timeStr
}
