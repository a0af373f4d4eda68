// ABOUTME: Newest-first ordering for logs and rides.
// ABOUTME: Stable, so records with equal dates keep insertion order.
package models

import "sort"

// SortLogsNewestFirst orders logs by date descending in place.
func SortLogsNewestFirst(logs []MaintenanceLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
}

// SortRidesNewestFirst orders rides by date descending in place.
func SortRidesNewestFirst(rides []Ride) {
	sort.SliceStable(rides, func(i, j int) bool {
		return rides[i].Date.After(rides[j].Date)
	})
}
