package adaccounts

import (
	"math"
	"strconv"
	"time"
)

// Active Directory stores timestamps such as accountExpires and pwdLastSet
// as 100-nanosecond intervals since 1601-01-01 UTC (Windows FILETIME).
var filetimeEpoch = time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)

// A value of 0 or MaxInt64 means the account never expires.
const filetimeNever = int64(math.MaxInt64)

// filetimeToTime converts a FILETIME value to a time.Time. The conversion
// splits seconds from the sub-second remainder to avoid overflowing a
// nanosecond duration.
func filetimeToTime(v int64) time.Time {
	secs := v / 1e7
	rem := v % 1e7 * 100
	return filetimeEpoch.Add(time.Duration(secs)*time.Second + time.Duration(rem)*time.Nanosecond)
}

// timeToFiletime converts a time.Time to a FILETIME value.
func timeToFiletime(t time.Time) int64 {
	return t.Sub(filetimeEpoch).Nanoseconds() / 100
}

// accountExpired reports whether a raw accountExpires attribute value
// denotes an expiry in the past. Empty values, the never-expires sentinels
// and unparseable values all report false.
func accountExpired(raw string, now time.Time) bool {
	if raw == "" || raw == "0" {
		return false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v == filetimeNever {
		return false
	}
	return filetimeToTime(v).Before(now)
}

// pwdLastSetTime converts a raw pwdLastSet attribute value to a time.Time.
// Returns the zero time for empty, zero or unparseable values.
func pwdLastSetTime(raw string) time.Time {
	if raw == "" || raw == "0" {
		return time.Time{}
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return filetimeToTime(v)
}
