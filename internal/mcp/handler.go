// Package mcp exposes the research service over the Model Context Protocol
// so agent clients can query quotes, fundamentals and valuations as tools.
package mcp

import (
	"net/http"

	"github.com/equitylens/equitylens/internal/common"
	"github.com/equitylens/equitylens/internal/config"
	"github.com/equitylens/equitylens/internal/research"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates an MCP handler with the research tools registered.
func NewHandler(svc *research.Service, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"equitylens",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	count := RegisterTools(mcpSrv, svc)
	mcpSrv.AddTool(VersionTool(), VersionToolHandler())

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", count+1).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
