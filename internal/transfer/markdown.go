// ABOUTME: Markdown report of the fleet, due maintenance, history and rides.
// ABOUTME: Read-only rendering; it cannot be imported back.
package transfer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/mtbmaint/internal/catalog"
	"github.com/harperreed/mtbmaint/internal/models"
	"github.com/harperreed/mtbmaint/internal/schedule"
)

// Markdown renders a report of snap. Due maintenance is derived from guides.
func Markdown(snap *models.Snapshot, guides []catalog.Guide, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Mountain Bike Maintenance Report - %s\n\n", now.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	names := make(map[string]string, len(snap.Bikes))
	for _, b := range snap.Bikes {
		names[b.ID] = b.Name
	}
	bikeName := func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return id
	}

	sb.WriteString("## Bikes\n\n")
	if len(snap.Bikes) == 0 {
		sb.WriteString("No bikes tracked.\n\n")
	} else {
		sb.WriteString("| Name | Bike | Mileage | Components |\n")
		sb.WriteString("|------|------|---------|------------|\n")
		for _, b := range snap.Bikes {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d |\n",
				cell(b.Name), cell(b.Describe()), FormatMiles(b.TotalMileage), len(b.Components)))
		}
		sb.WriteString("\n")
	}

	due := schedule.AcrossFleet(snap.Bikes, schedule.GroupLogs(snap.MaintenanceLogs), guides)
	sb.WriteString("## Due Maintenance\n\n")
	if len(due) == 0 {
		sb.WriteString("Nothing due.\n\n")
	} else {
		sb.WriteString("| Bike | Task | Status | Since Service | Interval |\n")
		sb.WriteString("|------|------|--------|---------------|----------|\n")
		for _, d := range due {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				cell(d.BikeName), cell(d.Guide.Title), d.Status,
				FormatMiles(d.MileageSinceService), FormatMiles(*d.Guide.IntervalMiles)))
		}
		sb.WriteString("\n")
	}

	logs := append([]models.MaintenanceLog(nil), snap.MaintenanceLogs...)
	models.SortLogsNewestFirst(logs)
	sb.WriteString("## Maintenance History\n\n")
	if len(logs) == 0 {
		sb.WriteString("No maintenance logged.\n\n")
	} else {
		sb.WriteString("| Date | Bike | Task | Category | Mileage | Notes |\n")
		sb.WriteString("|------|------|------|----------|---------|-------|\n")
		for _, l := range logs {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				l.Date, cell(bikeName(l.BikeID)), cell(l.TaskName), l.Category.DisplayName(),
				FormatMiles(l.MileageAtService), cell(l.Notes)))
		}
		sb.WriteString("\n")
	}

	rides := append([]models.Ride(nil), snap.Rides...)
	models.SortRidesNewestFirst(rides)
	sb.WriteString("## Rides\n\n")
	if len(rides) == 0 {
		sb.WriteString("No rides logged.\n")
	} else {
		sb.WriteString("| Date | Bike | Miles | Notes |\n")
		sb.WriteString("|------|------|-------|-------|\n")
		for _, r := range rides {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				r.Date, cell(bikeName(r.BikeID)), FormatMiles(r.Mileage), cell(r.Notes)))
		}
	}

	return sb.String()
}

// FormatMiles renders a mileage without trailing zeros.
func FormatMiles(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
