package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/mcp-exam-docs/internal/analyzer"
	"github.com/a3tai/mcp-exam-docs/internal/classifier"
	"github.com/a3tai/mcp-exam-docs/internal/compliance"
	"github.com/a3tai/mcp-exam-docs/internal/config"
	"github.com/a3tai/mcp-exam-docs/internal/content"
	"github.com/a3tai/mcp-exam-docs/internal/descriptions"
	"github.com/a3tai/mcp-exam-docs/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	analyzer  *analyzer.Service
	extractor *content.Extractor
	metrics   *metrics.Metrics
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance. m may be nil, in which case
// server mode exposes no /metrics endpoint.
func NewServer(cfg *config.Config, svc *analyzer.Service, extractor *content.Extractor, m *metrics.Metrics) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if svc == nil {
		return nil, fmt.Errorf("analyzer cannot be nil")
	}
	if extractor == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		analyzer:  svc,
		extractor: extractor,
		metrics:   m,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	analyzeDocumentTool := mcp.NewTool(
		"analyze_document",
		mcp.WithDescription(descriptions.GetToolDescription("analyze_document")),
		mcp.WithString("filename",
			mcp.Description("Original file name of the upload (defaults to the base name of path)"),
		),
		mcp.WithString("exam_type",
			mcp.Description("Lowercase exam id such as jee, neet, upsc, gate or cat"),
		),
		mcp.WithString("content",
			mcp.Description("Text content of the document, if already known"),
		),
		mcp.WithString("path",
			mcp.Description("File to read content from (absolute, or relative to the document directory)"),
		),
	)
	s.mcpServer.AddTool(analyzeDocumentTool, s.handleAnalyzeDocument)

	batchAnalyzeTool := mcp.NewTool(
		"batch_analyze",
		mcp.WithDescription(descriptions.GetToolDescription("batch_analyze")),
		mcp.WithString("files",
			mcp.Required(),
			mcp.Description(`JSON array of {"name": string, "content": string|null} objects`),
		),
		mcp.WithString("exam_type",
			mcp.Description("Lowercase exam id applied to every file"),
		),
	)
	s.mcpServer.AddTool(batchAnalyzeTool, s.handleBatchAnalyze)

	listCategoriesTool := mcp.NewTool(
		"list_categories",
		mcp.WithDescription(descriptions.GetToolDescription("list_categories")),
	)
	s.mcpServer.AddTool(listCategoriesTool, s.handleListCategories)

	serverInfoTool := mcp.NewTool(
		"server_info",
		mcp.WithDescription(descriptions.GetToolDescription("server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// AnalyzeResponse is the payload returned by analyze_document. Compliance is
// set when a file path was given and the exam sets an upload requirement for
// the detected document type.
type AnalyzeResponse struct {
	classifier.Result
	Compliance *compliance.Report `json:"compliance,omitempty"`
}

// Handler functions
func (s *Server) handleAnalyzeDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	filename := stringArg(args, "filename")
	path := stringArg(args, "path")
	text := stringArg(args, "content")

	if filename == "" && path == "" {
		return mcp.NewToolResultError("either filename or path is required"), nil
	}
	if filename == "" {
		filename = filepath.Base(path)
	}

	size := int64(-1)
	if path != "" {
		resolved := s.resolvePath(path)
		if text == "" {
			doc, err := s.extractor.Extract(resolved)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			text = doc.Text
			size = doc.Size
		} else if info, err := os.Stat(resolved); err == nil && !info.IsDir() {
			size = info.Size()
		}
	}

	examType := s.examType(args)
	response := AnalyzeResponse{Result: s.analyzer.AnalyzeDocument(filename, examType, text)}
	if size >= 0 {
		response.Compliance = compliance.Check(s.analyzer.Classifier().Catalogs(),
			response.DocumentType, examType, filename, size)
	}

	if s.config.IsDebug() {
		log.Printf("analyze_document %q -> %s/%s (%.2f)",
			filename, response.DocumentType, response.EducationLevel, response.Confidence)
	}

	return jsonResult(response)
}

// BatchResponse is the payload returned by batch_analyze
type BatchResponse struct {
	BatchID  string              `json:"batch_id"`
	ExamType string              `json:"exam_type,omitempty"`
	Count    int                 `json:"count"`
	Results  []classifier.Result `json:"results"`
}

func (s *Server) handleBatchAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files, err := request.RequireString("files")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	items, err := analyzer.DecodeBatch([]byte(files))
	if err != nil {
		var malformed *analyzer.MalformedInputError
		if errors.As(err, &malformed) {
			return mcp.NewToolResultError(malformed.Error()), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	examType := s.examType(request.GetArguments())
	response := BatchResponse{
		BatchID:  uuid.NewString(),
		ExamType: examType,
		Count:    len(items),
		Results:  s.analyzer.BatchAnalyze(items, examType),
	}

	if s.config.IsDebug() {
		log.Printf("batch_analyze %s: %d documents", response.BatchID, response.Count)
	}

	return jsonResult(response)
}

func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.analyzer.Classifier().Catalogs().Listing())
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name       string
	Usage      string
	Parameters string
}

var availableTools = []ToolInfo{
	{
		Name:       "analyze_document",
		Usage:      "Classify one upload, get a standardized file name and check it against the exam's upload requirements.",
		Parameters: "filename, exam_type, content, path (all optional, filename or path required)",
	},
	{
		Name:       "batch_analyze",
		Usage:      "Classify a list of uploads in one call; results keep input order.",
		Parameters: "files (required): JSON array of {name, content}; exam_type (optional)",
	},
	{
		Name:       "list_categories",
		Usage:      "List document types, education levels, exams and exam-specific labels.",
		Parameters: "none",
	},
	{
		Name:       "server_info",
		Usage:      "Show this overview.",
		Parameters: "none",
	},
}

// Formatting methods
func (s *Server) formatServerInfo() string {
	set := s.analyzer.Classifier().Catalogs()

	text := fmt.Sprintf("📋 %s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("📁 Document Directory: %s\n", s.config.DocumentDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	if s.config.DefaultExam != "" {
		text += fmt.Sprintf("🎓 Default Exam: %s\n", s.config.DefaultExam)
	} else {
		text += "🎓 Default Exam: none\n"
	}
	if s.config.CatalogPath != "" {
		text += fmt.Sprintf("🗂️  Catalog Overlay: %s\n", s.config.CatalogPath)
	}
	text += fmt.Sprintf("🏷️  Categories: %d document types, %d education levels\n\n",
		set.DocumentTypes.Len(), set.EducationLevels.Len())

	text += "🛠️  Available Tools:\n"
	for _, tool := range availableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += "\n💡 Confidence below 0.3 usually means only one weak signal matched; " +
		"ask for the document text or confirm the type with the candidate.\n"

	return text
}

// examType returns the requested exam type, or the configured default
func (s *Server) examType(args map[string]any) string {
	if exam := stringArg(args, "exam_type"); exam != "" {
		return exam
	}
	return s.config.DefaultExam
}

// resolvePath makes relative paths relative to the document directory
func (s *Server) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.config.DocumentDirectory, path)
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(encoded)), nil
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting exam document MCP server in stdio mode")
		log.Printf("Document directory: %s", s.config.DocumentDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over SSE until ctx is cancelled
func (s *Server) runServerMode(ctx context.Context) error {
	sseServer := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL("http://"+s.config.Address()),
	)

	httpServer := &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.httpHandler(sseServer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving MCP over SSE at http://%s/sse", s.config.Address())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := sseServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("SSE shutdown: %v", err)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
