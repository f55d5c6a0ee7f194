// Package mcp exposes the admin workflow as MCP tools so an internal
// assistant can inspect the review queue and drive transitions.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"wellmart/backend/internal/services"
	"wellmart/backend/pkg/models"
)

type Server struct {
	mcpServer *server.MCPServer
	products  *services.ProductService
	dashboard *services.DashboardService
}

func NewServer(products *services.ProductService, dashboard *services.DashboardService) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"Wellmart Admin Workflow",
			"1.0.0",
			server.WithToolCapabilities(true),
		),
		products:  products,
		dashboard: dashboard,
	}

	s.registerTools()
	return s
}

func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_product",
			mcp.WithDescription("Fetch a product with its workflow status and health scores"),
			mcp.WithString("id", mcp.Required(), mcp.Description("The product ID")),
		),
		s.handleGetProduct,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_review_queue",
			mcp.WithDescription("List products currently waiting for review"),
		),
		s.handleListReviewQueue,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"set_workflow_status",
			mcp.WithDescription("Transition a product's workflow status (validated against the state machine)"),
			mcp.WithString("id", mcp.Required(), mcp.Description("The product ID")),
			mcp.WithString("status", mcp.Required(), mcp.Description("Target status: draft, pending_review, approved, rejected or published")),
			mcp.WithString("notes", mcp.Description("Optional notes recorded in the audit trail")),
		),
		s.handleSetWorkflowStatus,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"workflow_stats",
			mcp.WithDescription("Get product and task counts for the admin dashboard"),
		),
		s.handleWorkflowStats,
	)
}

func (s *Server) handleGetProduct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get product: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(product)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListReviewQueue(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list products: %v", err)), nil
	}

	queue := make([]*models.Product, 0)
	for _, p := range products {
		if p.WorkflowStatus == models.WorkflowStatusPendingReview {
			queue = append(queue, p)
		}
	}

	jsonBytes, _ := json.Marshal(queue)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleSetWorkflowStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Invalid arguments type"), nil
	}

	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("Missing required parameter: id"), nil
	}

	status, ok := args["status"].(string)
	if !ok || status == "" {
		return mcp.NewToolResultError("Missing required parameter: status"), nil
	}

	var notes *string
	if n, ok := args["notes"].(string); ok && n != "" {
		notes = &n
	}

	product, err := s.products.SetWorkflowStatus(ctx, id, models.WorkflowStatus(status), notes)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to set workflow status: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(product)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleWorkflowStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.dashboard.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to compute stats: %v", err)), nil
	}

	jsonBytes, _ := json.Marshal(stats)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func MountHTTPHandlers(mux *http.ServeMux, mcpServer *server.MCPServer) {
	// Use SSE server for /mcp/sse and /mcp/message endpoints
	sseServer := server.NewSSEServer(mcpServer, server.WithStaticBasePath("/mcp"))

	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		// Direct POST for tool calls
		if r.Method == http.MethodPost {
			sseServer.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	// SSE endpoints
	mux.HandleFunc("/mcp/sse", sseServer.ServeHTTP)
	mux.HandleFunc("/mcp/message", sseServer.ServeHTTP)
}
