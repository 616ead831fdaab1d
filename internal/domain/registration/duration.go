package registration

import (
	"strconv"
	"time"
)

// FormatSeconds renders d as whole seconds ("<n>s"), flooring any
// sub-second remainder.
func FormatSeconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10) + "s"
}

// FormatMinutes renders d as whole minutes ("<n>m"), flooring any
// sub-minute remainder.
func FormatMinutes(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Minute), 10) + "m"
}
