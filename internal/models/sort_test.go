// ABOUTME: Tests for newest-first record ordering.
// ABOUTME: Checks stability on ties and placement of unparsable dates.
package models

import "testing"

func TestSortLogsNewestFirst(t *testing.T) {
	logs := []MaintenanceLog{
		{ID: "a", Date: MustParseDate("2024-01-01")},
		{ID: "b", Date: MustParseDate("2024-03-01")},
		{ID: "c", Date: ParseDate("unknown")},
		{ID: "d", Date: MustParseDate("2024-03-01")},
		{ID: "e", Date: MustParseDate("2024-02-01T10:00:00Z")},
	}
	SortLogsNewestFirst(logs)

	want := []string{"b", "d", "e", "a", "c"}
	for i, id := range want {
		if logs[i].ID != id {
			t.Fatalf("position %d = %s, want %s (order %v)", i, logs[i].ID, id, logs)
		}
	}
}

func TestSortRidesNewestFirst(t *testing.T) {
	rides := []Ride{
		{ID: "old", Date: MustParseDate("2023-12-31")},
		{ID: "new", Date: MustParseDate("2024-01-01")},
	}
	SortRidesNewestFirst(rides)
	if rides[0].ID != "new" || rides[1].ID != "old" {
		t.Errorf("unexpected order %s, %s", rides[0].ID, rides[1].ID)
	}
}
