package main

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/vire-capture/internal/browser"
	"github.com/bobmcallan/vire-capture/internal/capture"
	"github.com/bobmcallan/vire-capture/internal/common"
	"github.com/bobmcallan/vire-capture/internal/config"
)

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// --- Handlers ---

func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return textResult(fmt.Sprintf("vire-capture %s", config.GetFullVersion())), nil
	}
}

func handleCapturePage(cfg Config, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := capture.Request{
			TargetURL:  request.GetString("url", cfg.Target.URL),
			WaitText:   request.GetString("wait_text", cfg.Target.WaitText),
			OutputPath: request.GetString("output", cfg.Target.Output),
			Viewport:   request.GetString("viewport", cfg.Target.Viewport),
		}
		secs := request.GetInt("timeout_seconds", cfg.Target.TimeoutSeconds)
		if secs > 0 {
			req.Timeout = time.Duration(secs) * time.Second
		}

		runner := capture.NewRunner(&browser.Config{
			Headless:   cfg.Browser.Headless,
			ChromePath: cfg.Browser.ChromePath,
			Timeout:    req.Timeout,
		}, logger)

		res, err := runner.Run(ctx, req)
		if err != nil {
			switch {
			case capture.IsNavigationError(err):
				return errorResult(fmt.Sprintf("target unreachable: %v", err)), nil
			case capture.IsWaitTimeout(err):
				return errorResult(fmt.Sprintf("wait timed out: %v", err)), nil
			default:
				return errorResult(fmt.Sprintf("capture failed: %v", err)), nil
			}
		}

		msg := fmt.Sprintf("Captured %s (%d bytes in %s)", res.OutputPath, res.Bytes, res.Elapsed.Round(time.Millisecond))
		if len(res.JSErrors) > 0 {
			msg += fmt.Sprintf("; page reported %d JS error(s)", len(res.JSErrors))
		}
		return textResult(msg), nil
	}
}
