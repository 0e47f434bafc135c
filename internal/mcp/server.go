package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"statemap/internal/config"
	"statemap/internal/store"
)

type Server struct {
	cfg *config.ProjectConfig
	db  store.Store
	mcp *sdk.Server
}

func NewServer(cfg *config.ProjectConfig, db store.Store, version string) *Server {
	s := &Server{
		cfg: cfg,
		db:  db,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "statemap",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
