package deeplink

import "time"

// Observer receives match outcomes. Implementations must be safe for
// concurrent use when the router is shared.
type Observer interface {
	ObserveMatch(expression string, elapsed time.Duration)
	ObserveMiss(elapsed time.Duration)
	ObserveDecodeFailure(expression string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveMatch(string, time.Duration) {}
func (nopObserver) ObserveMiss(time.Duration)          {}
func (nopObserver) ObserveDecodeFailure(string, error) {}
