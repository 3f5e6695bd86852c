/*
Package resilience provides the circuit breaker guarding calls to the disk
backend.

# Overview

When the backend is down every console batch would otherwise wait out the
full HTTP timeout and retries for its first command. The breaker fails those
batches fast once the backend has failed repeatedly, and lets a few trial calls
through after a cool-down to detect recovery.

# Usage

	breaker := resilience.New("backend", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: resilience.ConsecutiveFailuresAtLeast(5),
	})

	resp, err := resilience.Do(breaker, func() (*resty.Response, error) {
		return req.Post(url)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open

Counts reset at every transition and every Interval while closed. Results of
requests that started before a reset are discarded.
*/
package resilience
