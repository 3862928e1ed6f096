package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/vire-capture/internal/common"
	"github.com/bobmcallan/vire-capture/internal/config"
)

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// Config holds all vire-capture-mcp configuration.
type Config struct {
	Server  ServerConfig         `toml:"server"`
	Target  config.TargetConfig  `toml:"target"`
	Browser config.BrowserConfig `toml:"browser"`
	Logging common.LoggingConfig `toml:"logging"`
}

// newDefaultConfig returns a Config with sensible defaults.
func newDefaultConfig() Config {
	base := config.NewDefaultConfig()
	return Config{
		Server: ServerConfig{
			Name: "Vire-Capture-MCP",
			Port: "4245",
		},
		Target:  base.Target,
		Browser: base.Browser,
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/vire-capture-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// loadConfig loads configuration from a TOML file with defaults and env overrides.
func loadConfig(path string) Config {
	cfg := newDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Fatalf("Failed to read config file %s: %v", path, err)
			}
			// File not found — use defaults
		} else {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				log.Fatalf("Failed to parse config file %s: %v", path, err)
			}
		}
	}

	// Environment overrides (matches vire-capture patterns)
	if u := os.Getenv("VIRECAP_TARGET_URL"); u != "" {
		cfg.Target.URL = u
	}
	if text := os.Getenv("VIRECAP_WAIT_TEXT"); text != "" {
		cfg.Target.WaitText = text
	}
	if out := os.Getenv("VIRECAP_OUTPUT"); out != "" {
		cfg.Target.Output = out
	}
	if chrome := os.Getenv("CHROME_PATH"); chrome != "" {
		cfg.Browser.ChromePath = chrome
	}
	if port := os.Getenv("VIRECAP_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}

	return cfg
}

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for Claude Desktop)")
	configFile := flag.String("config", "vire-capture-mcp.toml", "Path to config file")
	flag.Parse()

	cfg := loadConfig(*configFile)

	logger := common.NewLoggerFromConfig(cfg.Logging)

	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		server.WithToolCapabilities(true),
	)

	registerTools(mcpServer, cfg, logger)

	if *stdio {
		// Stdio transport — reads stdin, writes stdout
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	port := cfg.Server.Port

	// Streamable HTTP transport — listens on configured port
	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	logger.Info().Str("port", port).Msg("starting MCP streamable HTTP")
	fmt.Fprintf(os.Stderr, "Starting MCP Streamable HTTP on :%s\n", port)

	if err := httpServer.Start(":" + port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}
