// ABOUTME: MCP tool implementations for bikes, components, rides and services.
// ABOUTME: Bike references accept a full id, a unique id prefix or the bike's name.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/mtbmaint/internal/catalog"
	"github.com/harperreed/mtbmaint/internal/models"
	"github.com/harperreed/mtbmaint/internal/schedule"
	"github.com/harperreed/mtbmaint/internal/transfer"
)

const defaultLimit = 20

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_bike",
		Description: "Add a bike to track",
	}, s.handleAddBike)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_bikes",
		Description: "List all tracked bikes with their mileage",
	}, s.handleListBikes)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_bike",
		Description: "Get a bike with its components, due maintenance and recent services",
	}, s.handleGetBike)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_bike",
		Description: "Update a bike's details; only the given fields change",
	}, s.handleUpdateBike)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_bike",
		Description: "Delete a bike with its service logs and rides",
	}, s.handleDeleteBike)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_component",
		Description: "Install a component on a bike",
	}, s.handleAddComponent)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_component",
		Description: "Remove a component from a bike",
	}, s.handleDeleteComponent)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_ride",
		Description: "Log a ride; its mileage is added to the bike's total",
	}, s.handleAddRide)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_rides",
		Description: "List recent rides, optionally for one bike",
	}, s.handleListRides)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_service",
		Description: "Record that a maintenance task from the guide catalog was done on a bike",
	}, s.handleLogService)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_service_logs",
		Description: "List maintenance history, optionally for one bike",
	}, s.handleListServiceLogs)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "due_maintenance",
		Description: "List overdue, due and upcoming maintenance, optionally for one bike",
	}, s.handleDueMaintenance)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_guides",
		Description: "List maintenance guides, optionally filtered by category or search text",
	}, s.handleListGuides)
}

// Tool input/output types

type addBikeInput struct {
	Name         string  `json:"name" jsonschema:"Bike nickname" validate:"required"`
	Make         string  `json:"make,omitempty" jsonschema:"Manufacturer"`
	Model        string  `json:"model,omitempty" jsonschema:"Model name"`
	Year         int     `json:"year,omitempty" jsonschema:"Model year" validate:"omitempty,min=1900,max=2100"`
	TotalMileage float64 `json:"total_mileage,omitempty" jsonschema:"Starting mileage, defaults to 0" validate:"min=0"`
	Notes        string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type bikeOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type emptyInput struct{}

type bikeRefInput struct {
	Bike string `json:"bike" jsonschema:"Bike id, id prefix or name" validate:"required"`
}

type updateBikeInput struct {
	Bike         string   `json:"bike" jsonschema:"Bike id, id prefix or name" validate:"required"`
	Name         *string  `json:"name,omitempty" jsonschema:"New nickname" validate:"omitempty,min=1"`
	Make         *string  `json:"make,omitempty" jsonschema:"New manufacturer"`
	Model        *string  `json:"model,omitempty" jsonschema:"New model name"`
	Year         *int     `json:"year,omitempty" jsonschema:"New model year" validate:"omitempty,min=1900,max=2100"`
	TotalMileage *float64 `json:"total_mileage,omitempty" jsonschema:"Corrected total mileage" validate:"omitempty,min=0"`
	Notes        *string  `json:"notes,omitempty" jsonschema:"New notes"`
}

type addComponentInput struct {
	Bike             string   `json:"bike" jsonschema:"Bike id, id prefix or name" validate:"required"`
	Name             string   `json:"name" jsonschema:"Component name, e.g. SRAM GX chain" validate:"required"`
	Category         string   `json:"category" jsonschema:"One of drivetrain, brakes, suspension, wheels, frame" validate:"required,oneof=drivetrain brakes suspension wheels frame"`
	InstalledDate    string   `json:"installed_date,omitempty" jsonschema:"Install date (YYYY-MM-DD), defaults to today" validate:"omitempty,datetime=2006-01-02"`
	InstalledMileage *float64 `json:"installed_mileage,omitempty" jsonschema:"Bike mileage at install, defaults to current mileage" validate:"omitempty,min=0"`
	Notes            string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type componentOutput struct {
	ID      string `json:"id"`
	BikeID  string `json:"bike_id"`
	Message string `json:"message"`
}

type deleteComponentInput struct {
	Bike      string `json:"bike" jsonschema:"Bike id, id prefix or name" validate:"required"`
	Component string `json:"component" jsonschema:"Component id or id prefix" validate:"required"`
}

type addRideInput struct {
	Bike    string  `json:"bike" jsonschema:"Bike id, id prefix or name" validate:"required"`
	Mileage float64 `json:"mileage" jsonschema:"Distance ridden in miles" validate:"gt=0"`
	Date    string  `json:"date,omitempty" jsonschema:"Ride date (YYYY-MM-DD), defaults to today" validate:"omitempty,datetime=2006-01-02"`
	Notes   string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type rideOutput struct {
	ID           string  `json:"id"`
	BikeID       string  `json:"bike_id"`
	TotalMileage float64 `json:"total_mileage"`
	Message      string  `json:"message"`
}

type listInput struct {
	Bike  string `json:"bike,omitempty" jsonschema:"Bike id, id prefix or name; all bikes when omitted"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)" validate:"min=0"`
}

type logServiceInput struct {
	Bike             string   `json:"bike" jsonschema:"Bike id, id prefix or name" validate:"required"`
	GuideID          string   `json:"guide_id" jsonschema:"Guide id from list_guides, e.g. chain-lube" validate:"required"`
	Date             string   `json:"date,omitempty" jsonschema:"Service date (YYYY-MM-DD), defaults to today" validate:"omitempty,datetime=2006-01-02"`
	MileageAtService *float64 `json:"mileage_at_service,omitempty" jsonschema:"Bike mileage at service, defaults to current mileage" validate:"omitempty,min=0"`
	Notes            string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type serviceOutput struct {
	ID       string `json:"id"`
	BikeID   string `json:"bike_id"`
	TaskName string `json:"task_name"`
	Message  string `json:"message"`
}

type dueInput struct {
	Bike string `json:"bike,omitempty" jsonschema:"Bike id, id prefix or name; whole fleet when omitted"`
}

type listGuidesInput struct {
	Category string `json:"category,omitempty" jsonschema:"Filter by category" validate:"omitempty,oneof=all drivetrain brakes suspension wheels frame"`
	Search   string `json:"search,omitempty" jsonschema:"Case-insensitive text matched against title and tools"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleAddBike(ctx context.Context, req *mcp.CallToolRequest, input addBikeInput) (*mcp.CallToolResult, bikeOutput, error) {
	if err := s.check(input); err != nil {
		return nil, bikeOutput{}, err
	}

	bike, err := s.store.CreateBike(models.BikeFields{
		Name:         input.Name,
		Make:         input.Make,
		Model:        input.Model,
		Year:         models.Year(input.Year),
		TotalMileage: input.TotalMileage,
		Notes:        input.Notes,
	})
	if err != nil {
		return nil, bikeOutput{}, fmt.Errorf("failed to add bike: %w", err)
	}

	return nil, bikeOutput{
		ID:      bike.ID,
		Name:    bike.Name,
		Message: fmt.Sprintf("Added bike %s (ID: %s)", bike.Name, shortID(bike.ID)),
	}, nil
}

func (s *Server) handleListBikes(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	bikes := s.store.ListBikes()
	if len(bikes) == 0 {
		return nil, map[string]any{"message": "No bikes found."}, nil
	}

	summaries := make([]map[string]any, 0, len(bikes))
	for _, b := range bikes {
		items, err := s.store.DueForBike(b.ID, s.catalog)
		if err != nil {
			return nil, nil, err
		}
		summaries = append(summaries, map[string]any{
			"bike":        b,
			"description": b.Describe(),
			"due":         schedule.Summarize(items),
		})
	}
	return nil, map[string]any{"bikes": summaries}, nil
}

func (s *Server) handleGetBike(ctx context.Context, req *mcp.CallToolRequest, input bikeRefInput) (*mcp.CallToolResult, any, error) {
	if err := s.check(input); err != nil {
		return nil, nil, err
	}
	bike, err := s.store.FindBike(input.Bike)
	if err != nil {
		return nil, nil, err
	}

	due, err := s.store.DueForBike(bike.ID, s.catalog)
	if err != nil {
		return nil, nil, err
	}
	logs := s.store.LogsForBike(bike.ID)
	if len(logs) > 5 {
		logs = logs[:5]
	}
	rides := s.store.RidesForBike(bike.ID)
	if len(rides) > 5 {
		rides = rides[:5]
	}

	return nil, map[string]any{
		"bike":            bike,
		"due":             due,
		"recent_services": logs,
		"recent_rides":    rides,
	}, nil
}

func (s *Server) handleUpdateBike(ctx context.Context, req *mcp.CallToolRequest, input updateBikeInput) (*mcp.CallToolResult, bikeOutput, error) {
	if err := s.check(input); err != nil {
		return nil, bikeOutput{}, err
	}
	bike, err := s.store.FindBike(input.Bike)
	if err != nil {
		return nil, bikeOutput{}, err
	}

	patch := models.BikePatch{
		Name:         input.Name,
		Make:         input.Make,
		Model:        input.Model,
		TotalMileage: input.TotalMileage,
		Notes:        input.Notes,
	}
	if input.Year != nil {
		y := models.Year(*input.Year)
		patch.Year = &y
	}
	if err := s.store.UpdateBike(bike.ID, patch); err != nil {
		return nil, bikeOutput{}, fmt.Errorf("failed to update bike: %w", err)
	}

	updated, err := s.store.GetBike(bike.ID)
	if err != nil {
		return nil, bikeOutput{}, err
	}
	return nil, bikeOutput{
		ID:      updated.ID,
		Name:    updated.Name,
		Message: fmt.Sprintf("Updated bike %s", updated.Name),
	}, nil
}

func (s *Server) handleDeleteBike(ctx context.Context, req *mcp.CallToolRequest, input bikeRefInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.check(input); err != nil {
		return nil, simpleOutput{}, err
	}
	bike, err := s.store.FindBike(input.Bike)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.store.DeleteBike(bike.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete bike: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted bike %s with its service logs and rides", bike.Name),
	}, nil
}

func (s *Server) handleAddComponent(ctx context.Context, req *mcp.CallToolRequest, input addComponentInput) (*mcp.CallToolResult, componentOutput, error) {
	if err := s.check(input); err != nil {
		return nil, componentOutput{}, err
	}
	bike, err := s.store.FindBike(input.Bike)
	if err != nil {
		return nil, componentOutput{}, err
	}

	c, err := s.store.AddComponent(bike.ID, models.ComponentFields{
		Name:             input.Name,
		Category:         models.Category(input.Category),
		InstalledDate:    dateInput(input.InstalledDate),
		InstalledMileage: input.InstalledMileage,
		Notes:            input.Notes,
	})
	if err != nil {
		return nil, componentOutput{}, fmt.Errorf("failed to add component: %w", err)
	}

	return nil, componentOutput{
		ID:      c.ID,
		BikeID:  bike.ID,
		Message: fmt.Sprintf("Installed %s on %s at %s mi", c.Name, bike.Name, transfer.FormatMiles(c.InstalledMileage)),
	}, nil
}

func (s *Server) handleDeleteComponent(ctx context.Context, req *mcp.CallToolRequest, input deleteComponentInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.check(input); err != nil {
		return nil, simpleOutput{}, err
	}
	bike, err := s.store.FindBike(input.Bike)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	c, err := s.store.FindComponent(bike.ID, input.Component)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.store.DeleteComponent(bike.ID, c.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete component: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Removed %s from %s", c.Name, bike.Name),
	}, nil
}

func (s *Server) handleAddRide(ctx context.Context, req *mcp.CallToolRequest, input addRideInput) (*mcp.CallToolResult, rideOutput, error) {
	if err := s.check(input); err != nil {
		return nil, rideOutput{}, err
	}
	bike, err := s.store.FindBike(input.Bike)
	if err != nil {
		return nil, rideOutput{}, err
	}

	ride, err := s.store.AddRide(models.RideFields{
		BikeID:  bike.ID,
		Mileage: input.Mileage,
		Date:    dateInput(input.Date),
		Notes:   input.Notes,
	})
	if err != nil {
		return nil, rideOutput{}, fmt.Errorf("failed to add ride: %w", err)
	}

	total := bike.TotalMileage + ride.Mileage
	return nil, rideOutput{
		ID:           ride.ID,
		BikeID:       bike.ID,
		TotalMileage: total,
		Message:      fmt.Sprintf("Logged %s mi on %s (total %s mi)", transfer.FormatMiles(ride.Mileage), bike.Name, transfer.FormatMiles(total)),
	}, nil
}

func (s *Server) handleListRides(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	if err := s.check(input); err != nil {
		return nil, nil, err
	}

	var rides []models.Ride
	if input.Bike != "" {
		bike, err := s.store.FindBike(input.Bike)
		if err != nil {
			return nil, nil, err
		}
		rides = s.store.RidesForBike(bike.ID)
	} else {
		rides = s.store.AllRides()
	}

	if len(rides) == 0 {
		return nil, map[string]any{"message": "No rides found."}, nil
	}
	return nil, map[string]any{"rides": limit(rides, input.Limit)}, nil
}

func (s *Server) handleLogService(ctx context.Context, req *mcp.CallToolRequest, input logServiceInput) (*mcp.CallToolResult, serviceOutput, error) {
	if err := s.check(input); err != nil {
		return nil, serviceOutput{}, err
	}
	bike, err := s.store.FindBike(input.Bike)
	if err != nil {
		return nil, serviceOutput{}, err
	}

	l, err := s.store.LogService(bike.ID, input.GuideID, s.catalog, models.LogFields{
		Date:             dateInput(input.Date),
		MileageAtService: input.MileageAtService,
		Notes:            input.Notes,
	})
	if err != nil {
		return nil, serviceOutput{}, fmt.Errorf("failed to log service: %w", err)
	}

	return nil, serviceOutput{
		ID:       l.ID,
		BikeID:   bike.ID,
		TaskName: l.TaskName,
		Message:  fmt.Sprintf("Logged %s on %s at %s mi", l.TaskName, bike.Name, transfer.FormatMiles(l.MileageAtService)),
	}, nil
}

func (s *Server) handleListServiceLogs(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	if err := s.check(input); err != nil {
		return nil, nil, err
	}

	var logs []models.MaintenanceLog
	if input.Bike != "" {
		bike, err := s.store.FindBike(input.Bike)
		if err != nil {
			return nil, nil, err
		}
		logs = s.store.LogsForBike(bike.ID)
	} else {
		logs = s.store.RecentLogs(0)
	}

	if len(logs) == 0 {
		return nil, map[string]any{"message": "No service logs found."}, nil
	}
	return nil, map[string]any{"logs": limit(logs, input.Limit)}, nil
}

func (s *Server) handleDueMaintenance(ctx context.Context, req *mcp.CallToolRequest, input dueInput) (*mcp.CallToolResult, any, error) {
	var items []schedule.DueItem
	if input.Bike != "" {
		bike, err := s.store.FindBike(input.Bike)
		if err != nil {
			return nil, nil, err
		}
		items, err = s.store.DueForBike(bike.ID, s.catalog)
		if err != nil {
			return nil, nil, err
		}
	} else {
		items = s.store.DueAcrossFleet(s.catalog)
	}

	if len(items) == 0 {
		return nil, map[string]any{"message": "Nothing due. All caught up."}, nil
	}
	return nil, map[string]any{
		"summary": schedule.Summarize(items),
		"items":   items,
	}, nil
}

func (s *Server) handleListGuides(ctx context.Context, req *mcp.CallToolRequest, input listGuidesInput) (*mcp.CallToolResult, any, error) {
	if err := s.check(input); err != nil {
		return nil, nil, err
	}

	guides := s.catalog.Search(input.Search, input.Category)
	if len(guides) == 0 {
		return nil, map[string]any{"message": "No guides match."}, nil
	}
	return nil, map[string]any{"guides": guideSummaries(guides)}, nil
}

type guideSummary struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Category      models.Category    `json:"category"`
	Difficulty    catalog.Difficulty `json:"difficulty"`
	IntervalMiles *float64           `json:"intervalMiles,omitempty"`
	Tools         []string           `json:"tools"`
}

func guideSummaries(guides []catalog.Guide) []guideSummary {
	out := make([]guideSummary, len(guides))
	for i, g := range guides {
		out[i] = guideSummary{
			ID:            g.ID,
			Title:         g.Title,
			Category:      g.Category,
			Difficulty:    g.Difficulty,
			IntervalMiles: g.IntervalMiles,
			Tools:         g.Tools,
		}
	}
	return out
}

// dateInput turns an optional YYYY-MM-DD string into a Date; empty means "use the default".
func dateInput(s string) models.Date {
	if s == "" {
		return models.Date{}
	}
	return models.ParseDate(s)
}

func limit[T any](items []T, n int) []T {
	if n <= 0 {
		n = defaultLimit
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
