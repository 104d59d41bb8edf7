// Package server exposes saved experiment results over HTTP for inspection.
// It is read-only: tables and traces are written by the benchmark commands
// and only served here.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rlbook/tabular-rl/store"
)

type ResultServer struct {
	ctx    context.Context
	tables *store.FileStore
	dir    string
	server *http.Server
}

func NewResultServer(ctx context.Context, port int, tables *store.FileStore) *ResultServer {
	s := &ResultServer{
		ctx:    ctx,
		tables: tables,
		dir:    tables.Dir(),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/healthz", healthHandler)
	r.GET("/tables", s.handleListTables)
	r.GET("/tables/:name", s.handleGetTable)
	r.GET("/traces/:name", s.handleGetTraces)
	s.server = &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: r,
	}

	return s
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *ResultServer) handleListTables(c *gin.Context) {
	names, err := s.tables.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": names})
}

func (s *ResultServer) handleGetTable(c *gin.Context) {
	name := c.Param("name")
	bs, err := s.tables.Raw(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
		return
	}
	c.Data(http.StatusOK, "application/json", bs)
}

// traces are recorded as one JSON document per line under traces/ in the
// result directory
func (s *ResultServer) handleGetTraces(c *gin.Context) {
	name := c.Param("name")
	bs, err := os.ReadFile(filepath.Join(s.dir, "traces", name+".jsonl"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "traces not found"})
		return
	}
	c.Data(http.StatusOK, "application/x-ndjson", bs)
}

func (s *ResultServer) Start() {
	go func() {
		s.server.ListenAndServe()
	}()

	go func() {
		<-s.ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.server.Shutdown(ctx)
	}()
}
