package store

import "time"

func unixNanoTime(nanos int64) time.Time {
	return time.Unix(0, nanos).UTC()
}
