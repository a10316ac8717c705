//go:build linux || darwin

package diagnostics

import "golang.org/x/sys/unix"

// Timestamp is an opaque monotonic clock reading.
type Timestamp struct {
	sec  int64
	nsec int64
}

// Now reads CLOCK_MONOTONIC directly rather than going through
// time.Now(), the same reason the teacher's loader_unix.go reaches past
// the stdlib os package for mmap: avoiding the wall-clock/NTP-adjustment
// bookkeeping time.Time otherwise carries alongside its monotonic
// reading.
func Now() Timestamp {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return Timestamp{}
	}
	return Timestamp{sec: int64(ts.Sec), nsec: int64(ts.Nsec)}
}

// Since returns the nanoseconds elapsed since start.
func Since(start Timestamp) int64 {
	now := Now()
	return (now.sec-start.sec)*1_000_000_000 + (now.nsec - start.nsec)
}
