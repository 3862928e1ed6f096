package main

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/vire-capture/internal/common"
)

// registerTools registers all MCP tools on the server, wiring each to a
// handler that runs the capture routine in-process.
func registerTools(s *server.MCPServer, cfg Config, logger *common.Logger) {
	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createCapturePageTool(), handleCapturePage(cfg, logger))
}

func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the vire-capture version. Use this to verify connectivity."),
	)
}

func createCapturePageTool() mcp.Tool {
	return mcp.NewTool("capture_page",
		mcp.WithDescription("Open a headless browser, navigate to a URL, wait for the given text to render, and save a screenshot. Fails if the target is unreachable or the text never appears."),
		mcp.WithString("url", mcp.Description("Target URL. Uses the configured default (http://localhost:8081) if not specified.")),
		mcp.WithString("wait_text", mcp.Description("Text that must be present in the page before capture (default: LOADING)")),
		mcp.WithString("output", mcp.Description("Screenshot output path (default: loading_verification.png). Overwrites any existing file.")),
		mcp.WithNumber("timeout_seconds", mcp.Description("How long to wait for the text before failing (default: 30)")),
		mcp.WithString("viewport", mcp.Description("Viewport as WxH, e.g. 1280x720. Uses Chrome's default when omitted.")),
	)
}
