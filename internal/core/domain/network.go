package domain

import "time"

// NetworkState captures the connectivity view of the process: whether
// the host believes it is online at all, and whether the datastore
// endpoint answered the last reachability probe. Mutated only by the
// connectivity monitor and published to subscribers by value.
type NetworkState struct {
	IsOnline           bool      `json:"is_online"`
	IsServiceReachable bool      `json:"is_service_reachable"`
	LastCheckedAt      time.Time `json:"last_checked_at"`
}
