// ABOUTME: MCP server setup for the bike maintenance store.
// ABOUTME: Wraps the MCP server with the store, the guide catalog and an input validator.
package mcp

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/mtbmaint/internal/catalog"
	"github.com/harperreed/mtbmaint/internal/store"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with store access.
type Server struct {
	mcpServer *mcp.Server
	store     *store.Store
	catalog   *catalog.Catalog
	validate  *validator.Validate
}

// NewServer creates a new MCP server over the given store and catalog.
func NewServer(st *store.Store, cat *catalog.Catalog) (*Server, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cat == nil {
		cat = catalog.Default()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mtbmaint",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     st,
		catalog:   cat,
		validate:  validator.New(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// check validates a tool input struct.
func (s *Server) check(input any) error {
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}
