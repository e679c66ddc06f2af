package util

import "time"

// TimestampLayout is the string form every table stores timestamps in.
const TimestampLayout = "2006-01-02 15:04:05"

func NowTimestamp() string {
	return time.Now().Format(TimestampLayout)
}

// FormatTimestamp renders a stored timestamp for display; unparseable
// values are returned untouched.
func FormatTimestamp(ts string) string {
	t, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		return ts
	}
	return t.Format("Jan 02, 2006 15:04")
}
