package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/livebud/cli"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/webreader/jina-mcp/internal/env"
	"github.com/webreader/jina-mcp/reader"
	"github.com/webreader/jina-mcp/tools"
	"golang.org/x/sync/errgroup"
)

// Version of the server, reported during the MCP handshake.
const Version = "0.1.0"

func New(log *slog.Logger) *CLI {
	return &CLI{log: log}
}

// CLI parses flags and runs the server. Nothing is written to stdout: in
// stdio mode that stream belongs to the protocol.
type CLI struct {
	log *slog.Logger
}

func (c *CLI) Parse(ctx context.Context, args ...string) error {
	cmd := &Serve{Log: c.log}
	cli := cli.New("jina-mcp", "serve web reading, search, and fact-checking tools over MCP")
	cli.Flag("transport", "transport to serve on: stdio or http").Short('t').Enum(&cmd.Transport, "stdio", "http").Default("stdio")
	cli.Flag("addr", "listen address for the http transport").Env("JINA_MCP_ADDR").String(&cmd.Addr).Default(":8080")
	cli.Flag("path", "request path for the http transport").String(&cmd.Path).Default("/mcp")
	cli.Flag("legacy", "enable the legacy tool set: fact_check and client-side search formatting").Bool(&cmd.Legacy).Default(false)
	cli.Run(func(ctx context.Context) error {
		return c.Serve(ctx, cmd)
	})
	return cli.Parse(ctx, args...)
}

type Serve struct {
	Log       *slog.Logger
	Transport string
	Addr      string
	Path      string
	Legacy    bool
}

// Serve wires the reader client and tool set into an MCP server and runs it
// on the selected transport until the context is canceled.
func (c *CLI) Serve(ctx context.Context, in *Serve) error {
	env, err := env.Load()
	if err != nil {
		return fmt.Errorf("cli: unable to load env: %w", err)
	}
	if env.APIKey == "" {
		c.log.Warn("JINA_API_KEY is not set, running at the unauthenticated service tier")
	}

	client := reader.New(c.log, env.APIKey,
		reader.WithEndpoints(env.ReaderURL, env.SearchURL, env.GroundingURL),
	)

	server := mcp.NewServer(&mcp.Implementation{Name: "jina-mcp", Version: Version}, nil)
	tools.Register(server, client, in.Legacy)

	switch in.Transport {
	case "http":
		return c.serveHTTP(ctx, in, server)
	default:
		c.log.Debug("serving on stdio")
		return server.Run(ctx, &mcp.StdioTransport{})
	}
}

func (c *CLI) serveHTTP(ctx context.Context, in *Serve, server *mcp.Server) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(in.Path, handler)
	hs := &http.Server{
		Addr:    in.Addr,
		Handler: mux,
	}

	c.log.Info("serving over http", "addr", in.Addr, "path", in.Path)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	})
	eg.Go(func() error {
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cli: serving http: %w", err)
		}
		return nil
	})
	return eg.Wait()
}
