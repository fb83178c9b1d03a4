package newsbrowse

import "time"

// DateLayout is the layout of target dates, e.g. "20240615".
const DateLayout = "20060102"

// kst is Korea Standard Time, UTC+9 without daylight saving.
var kst = time.FixedZone("KST", 9*60*60)

// TargetDate returns the day before now in Korea Standard Time.
func TargetDate(now time.Time) string {
	return now.In(kst).AddDate(0, 0, -1).Format(DateLayout)
}

// ValidateDate returns EINVALID if date is not a YYYYMMDD calendar date.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Errorf(EINVALID, "invalid date %q, want YYYYMMDD", date)
	}
	return nil
}
