package service

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/theapemachine/a2a-bridge/pkg/bridge"
)

const (
	MethodToolsList = "tools/list"
	MethodToolsCall = "tools/call"
)

/*
Request is the body accepted on the tool endpoint.
*/
type Request struct {
	Method string `json:"method"`
	Params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"params"`
}

/*
BridgeServer carries tool calls over HTTP to a Bridge. Handlers run
concurrently; the Bridge is safe for concurrent use.
*/
type BridgeServer struct {
	app    *fiber.App
	bridge *bridge.Bridge
	path   string
}

/*
NewBridgeServer mounts the tool endpoint at path.
*/
func NewBridgeServer(b *bridge.Bridge, path string) *BridgeServer {
	srv := &BridgeServer{
		app: fiber.New(fiber.Config{
			AppName:      "A2A-Bridge",
			ServerHeader: "A2A-Bridge-Server",
		}),
		bridge: b,
		path:   path,
	}

	srv.app.Use(recover.New(), logger.New(logger.Config{
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/healthz" || c.Path() == "/metrics"
		},
	}))

	srv.app.Get("/healthz", srv.handleHealth)
	srv.app.Get("/metrics", srv.handleMetrics)
	srv.app.Post(srv.path, srv.handleTools)

	return srv
}

/*
App exposes the underlying fiber application.
*/
func (srv *BridgeServer) App() *fiber.App {
	return srv.app
}

/*
Start blocks serving on addr until Shutdown is called.
*/
func (srv *BridgeServer) Start(addr string) error {
	log.Info("MCP-A2A bridge starting", "addr", addr, "path", srv.path)
	return srv.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

/*
Shutdown stops accepting requests and waits for in-flight ones.
*/
func (srv *BridgeServer) Shutdown(ctx context.Context) error {
	return srv.app.ShutdownWithContext(ctx)
}

func (srv *BridgeServer) handleHealth(ctx fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status": "ok",
		"agents": srv.bridge.Registry().Len(),
	})
}

func (srv *BridgeServer) handleMetrics(ctx fiber.Ctx) error {
	return ctx.JSON(srv.bridge.Metrics().GetMetrics())
}

func (srv *BridgeServer) handleTools(ctx fiber.Ctx) error {
	var req Request

	if err := json.Unmarshal(ctx.Body(), &req); err != nil {
		log.Warn("rejected request body", "error", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	switch req.Method {
	case MethodToolsList:
		return ctx.JSON(fiber.Map{"tools": srv.bridge.Tools()})
	case MethodToolsCall:
		return ctx.JSON(srv.bridge.Invoke(ctx.Context(), req.Params.Name, req.Params.Arguments))
	}

	return ctx.JSON(fiber.Map{"error": "Unknown method"})
}
