package gmail_tools

import (
	"github.com/teemow/workspace-mcp/internal/operation"
	"github.com/teemow/workspace-mcp/internal/server"
)

const service = "gmail"

// Operations returns all Gmail operations.
func Operations(sc *server.ServerContext) []operation.Descriptor {
	ops := messageOperations(sc)
	ops = append(ops, labelOperations(sc)...)
	return ops
}
