// Package mcpapi exposes a magds.Store as an MCP tool server, modeled on
// qubicDB-qubicdb/pkg/mcp/server.go's handler-construction shape: a
// Backend capability interface, tools registered against an *mcpserver.MCPServer,
// and the same API-key + rate-limit middleware stack wrapping the
// streamable HTTP handler.
package mcpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	mcpproto "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	toolSensorInsert = "magds_sensor_insert"
	toolSensorSearch = "magds_sensor_search"
	toolPredict      = "magds_predict"
	toolIngestStatus = "magds_ingest_status"
)

// Config controls MCP route behavior.
type Config struct {
	APIKey         string
	Stateless      bool
	RateLimitRPS   float64
	RateLimitBurst int
}

// Backend is the minimal capability contract exposed to MCP tools, wrapping
// a *magds.Store without coupling this package to its concrete type (so
// request validation and text<->TaggedValue decoding stay at the call
// site, in cmd/magds or a thin adapter).
type Backend interface {
	SensorInsert(ctx context.Context, sensor, valueText string) (map[string]any, error)
	SensorSearch(ctx context.Context, sensor, valueText string, fuzzy bool) (map[string]any, error)
	Predict(ctx context.Context, features map[string]string, target string, fuzzy bool) (map[string]any, error)
	IngestStatus(ctx context.Context) (map[string]any, error)
}

// NewHandler builds an MCP streamable HTTP handler with optional API-key
// auth and endpoint-local rate limiting.
func NewHandler(cfg Config, backend Backend) (http.Handler, error) {
	if backend == nil {
		return nil, fmt.Errorf("mcpapi backend is required")
	}

	s := mcpserver.NewMCPServer(
		"magds-mcp",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)

	registerTools(s, backend)

	streamable := mcpserver.NewStreamableHTTPServer(s, mcpserver.WithStateLess(cfg.Stateless))
	var h http.Handler = http.HandlerFunc(streamable.ServeHTTP)

	if strings.TrimSpace(cfg.APIKey) != "" {
		h = apiKeyMiddleware(strings.TrimSpace(cfg.APIKey), h)
	}
	if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
		h = rateLimitMiddleware(newRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst), h)
	}
	h = requestIDMiddleware(h)

	return h, nil
}

// requestIDMiddleware stamps every inbound call with a correlation id,
// echoed back in X-Request-Id and carried into the request log line so a
// tool call can be traced across the API-key and rate-limit layers.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		log.Printf("mcpapi: request %s: %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func registerTools(s *mcpserver.MCPServer, backend Backend) {
	s.AddTool(mcpproto.NewTool(toolSensorInsert,
		mcpproto.WithDescription("Insert a value into a MAGDS sensor, creating or incrementing its neuron."),
		mcpproto.WithString("sensor", mcpproto.Required(), mcpproto.Description("Sensor (attribute) name.")),
		mcpproto.WithString("value", mcpproto.Required(), mcpproto.Description("Value text, parsed against the sensor's scalar type.")),
	), func(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
		args := req.GetArguments()
		sensor := getString(args, "sensor", "")
		value := getString(args, "value", "")
		if sensor == "" || value == "" {
			return errResult("sensor and value are required"), nil
		}
		result, err := backend.SensorInsert(ctx, sensor, value)
		if err != nil {
			return errResult(err.Error()), nil
		}
		return structuredResult("value inserted", result)
	})

	s.AddTool(mcpproto.NewTool(toolSensorSearch,
		mcpproto.WithDescription("Search a MAGDS sensor for a value, optionally falling back to the nearest key."),
		mcpproto.WithString("sensor", mcpproto.Required(), mcpproto.Description("Sensor (attribute) name.")),
		mcpproto.WithString("value", mcpproto.Required(), mcpproto.Description("Value text, parsed against the sensor's scalar type.")),
		mcpproto.WithBoolean("fuzzy", mcpproto.Description("Fall back to the nearest key for continuous/discrete sensors. Default false.")),
	), func(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
		args := req.GetArguments()
		sensor := getString(args, "sensor", "")
		value := getString(args, "value", "")
		if sensor == "" || value == "" {
			return errResult("sensor and value are required"), nil
		}
		fuzzy := getBool(args, "fuzzy", false)
		result, err := backend.SensorSearch(ctx, sensor, value, fuzzy)
		if err != nil {
			return errResult(err.Error()), nil
		}
		return structuredResult("search completed", result)
	})

	s.AddTool(mcpproto.NewTool(toolPredict,
		mcpproto.WithDescription("Predict a target attribute's value via spreading activation from a feature set."),
		mcpproto.WithString("features", mcpproto.Required(), mcpproto.Description("JSON object mapping feature attribute name to value text, e.g. {\"petal_length\":\"1.4\"}.")),
		mcpproto.WithString("target", mcpproto.Required(), mcpproto.Description("Attribute to predict.")),
		mcpproto.WithBoolean("fuzzy", mcpproto.Description("Allow fuzzy matching on continuous/discrete features. Default false.")),
	), func(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
		args := req.GetArguments()
		target := getString(args, "target", "")
		raw := getString(args, "features", "")
		if target == "" || raw == "" {
			return errResult("features and target are required"), nil
		}
		var features map[string]string
		if err := json.Unmarshal([]byte(raw), &features); err != nil {
			return errResult("features must be a valid JSON object of string values"), nil
		}
		fuzzy := getBool(args, "fuzzy", false)
		result, err := backend.Predict(ctx, features, target, fuzzy)
		if err != nil {
			return errResult(err.Error()), nil
		}
		return structuredResult("prediction completed", result)
	})

	s.AddTool(mcpproto.NewTool(toolIngestStatus,
		mcpproto.WithDescription("Report how many object neurons are currently loaded."),
	), func(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
		result, err := backend.IngestStatus(ctx)
		if err != nil {
			return errResult(err.Error()), nil
		}
		return structuredResult("status reported", result)
	})
}

func errResult(msg string) *mcpproto.CallToolResult {
	return &mcpproto.CallToolResult{
		Content: []mcpproto.Content{
			mcpproto.TextContent{Type: "text", Text: "Error: " + msg},
		},
		IsError: true,
	}
}

func structuredResult(summary string, data any) (*mcpproto.CallToolResult, error) {
	blob, err := json.Marshal(data)
	if err != nil {
		return errResult(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return &mcpproto.CallToolResult{
		Content: []mcpproto.Content{
			mcpproto.TextContent{Type: "text", Text: summary},
			mcpproto.TextContent{Type: "text", Text: string(blob)},
		},
	}, nil
}

func getString(args map[string]any, key string, def string) string {
	if args == nil {
		return def
	}
	if v, ok := args[key].(string); ok {
		return v
	}
	return def
}

func getBool(args map[string]any, key string, def bool) bool {
	if args == nil {
		return def
	}
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

func apiKeyMiddleware(expected string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		provided := strings.TrimSpace(r.Header.Get("X-API-Key"))
		if provided == "" {
			auth := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
				provided = strings.TrimSpace(auth[7:])
			}
		}

		if provided == "" || provided != expected {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type rateLimitEntry struct {
	tokens float64
	last   time.Time
}

type rateLimiter struct {
	rps   float64
	burst float64

	mu      sync.Mutex
	clients map[string]rateLimitEntry
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	return &rateLimiter{
		rps:     rps,
		burst:   float64(burst),
		clients: make(map[string]rateLimitEntry),
	}
}

func (rl *rateLimiter) allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, ok := rl.clients[key]
	if !ok {
		rl.clients[key] = rateLimitEntry{tokens: rl.burst - 1, last: now}
		return true
	}

	elapsed := now.Sub(entry.last).Seconds()
	entry.tokens = math.Min(rl.burst, entry.tokens+elapsed*rl.rps)
	entry.last = now
	if entry.tokens < 1 {
		rl.clients[key] = entry
		return false
	}
	entry.tokens -= 1
	rl.clients[key] = entry
	return true
}

func rateLimitMiddleware(rl *rateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientAddr(r)
		if !rl.allow(key) {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		parts := strings.Split(fwd, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if strings.TrimSpace(r.RemoteAddr) != "" {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return "unknown"
}
