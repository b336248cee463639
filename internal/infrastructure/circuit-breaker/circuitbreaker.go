package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	// OpenTimeout is how long an open breaker rejects calls before letting
	// a trial call through.
	OpenTimeout = 30 * time.Second

	minRequestsToTrip  = 3
	failureRatioToTrip = 0.6
)

// ErrRejected marks a call the remote side answered and refused because of
// the caller's input. It fails the call but is not counted against the host.
var ErrRejected = errors.New("rejected by remote host")

// CreateCircuitBreaker returns a breaker that opens once at least three calls
// were made and 60% of them failed for reasons other than ErrRejected.
func CreateCircuitBreaker(name string) *gobreaker.CircuitBreaker[string] {
	var st gobreaker.Settings
	st.Name = name
	st.Timeout = OpenTimeout
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= minRequestsToTrip && failureRatio >= failureRatioToTrip
	}
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, ErrRejected)
	}

	return gobreaker.NewCircuitBreaker[string](st)
}
