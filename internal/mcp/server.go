// Package mcp exposes the documentation generator to editors over an MCP
// (JSON-RPC 2.0 over stdio) server.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"docwriter/internal/editor"
	"docwriter/internal/generator"
	"docwriter/internal/locator"
)

type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server serves the document-function and document-file tools over stdio.
type Server struct {
	gen     *generator.Generator
	version string
}

// NewServer wraps a generator in an MCP stdio server.
func NewServer(gen *generator.Generator, version string) *Server {
	return &Server{gen: gen, version: version}
}

// Run processes newline-delimited JSON-RPC requests until stdin closes.
func (s *Server) Run(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)
	writer := bufio.NewWriter(os.Stdout)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var req JSONRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeError(writer, nil, -32700, "Parse error")
			continue
		}

		s.handleRequest(ctx, writer, &req)
	}
}

func (s *Server) handleRequest(ctx context.Context, writer *bufio.Writer, req *JSONRPCRequest) {
	switch req.Method {
	case "initialize":
		s.handleInitialize(writer, req)
	case "tools/list":
		s.handleToolsList(writer, req)
	case "tools/call":
		s.handleToolsCall(ctx, writer, req)
	default:
		s.writeError(writer, req.ID, -32601, "Method not found")
	}
}

func (s *Server) handleInitialize(writer *bufio.Writer, req *JSONRPCRequest) {
	result := map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"serverInfo": map[string]string{
			"name":    "docwriter-mcp",
			"version": s.version,
		},
		"capabilities": map[string]interface{}{
			"tools": map[string]bool{},
		},
	}
	s.writeResponse(writer, req.ID, result)
}

func (s *Server) handleToolsList(writer *bufio.Writer, req *JSONRPCRequest) {
	tools := []map[string]interface{}{
		{
			"name":        "document-function",
			"description": "Generate a documentation comment for the function at a given line of a source file",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"file":  map[string]string{"type": "string"},
					"line":  map[string]string{"type": "integer"},
					"write": map[string]string{"type": "boolean"},
				},
				"required": []string{"file", "line"},
			},
		},
		{
			"name":        "document-file",
			"description": "Generate documentation comments for every undocumented function in a source file",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"file":  map[string]string{"type": "string"},
					"write": map[string]string{"type": "boolean"},
				},
				"required": []string{"file"},
			},
		},
	}
	s.writeResponse(writer, req.ID, map[string]interface{}{"tools": tools})
}

func (s *Server) handleToolsCall(ctx context.Context, writer *bufio.Writer, req *JSONRPCRequest) {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(writer, req.ID, -32602, "Invalid params")
		return
	}

	var result interface{}
	var err error

	switch params.Name {
	case "document-function":
		result, err = s.handleDocumentFunction(ctx, params.Arguments)
	case "document-file":
		result, err = s.handleDocumentFile(ctx, params.Arguments)
	default:
		s.writeError(writer, req.ID, -32602, "Unknown tool")
		return
	}

	if err != nil {
		s.writeError(writer, req.ID, -32603, err.Error())
		return
	}

	s.writeResponse(writer, req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": formatResult(result),
			},
		},
	})
}

func (s *Server) handleDocumentFunction(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var input struct {
		File  string `json:"file"`
		Line  int    `json:"line"`
		Write bool   `json:"write"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return nil, err
	}

	doc, err := editor.LoadDocument(input.File)
	if err != nil {
		return nil, err
	}

	result, err := s.gen.ForFunction(ctx, doc, input.Line, locator.DetectLanguage(input.File))
	if err != nil {
		return nil, err
	}

	if input.Write {
		doc.InsertAbove(result.InsertionLine, result.Text)
		if err := doc.Save(); err != nil {
			return nil, fmt.Errorf("failed to apply edit: %w", err)
		}
	}
	return result, nil
}

func (s *Server) handleDocumentFile(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var input struct {
		File  string `json:"file"`
		Write bool   `json:"write"`
	}
	if err := json.Unmarshal(args, &input); err != nil {
		return nil, err
	}

	doc, err := editor.LoadDocument(input.File)
	if err != nil {
		return nil, err
	}

	results, err := s.gen.ForFile(ctx, doc, locator.DetectLanguage(input.File))
	if err != nil {
		return nil, err
	}

	if input.Write && len(results) > 0 {
		doc.ApplyResults(results)
		if err := doc.Save(); err != nil {
			return nil, fmt.Errorf("failed to apply edits: %w", err)
		}
	}
	return results, nil
}

func (s *Server) writeResponse(writer *bufio.Writer, id interface{}, result interface{}) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
	data, _ := json.Marshal(resp)
	writer.Write(data)
	writer.WriteByte('\n')
	writer.Flush()
}

func (s *Server) writeError(writer *bufio.Writer, id interface{}, code int, message string) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
		},
	}
	data, _ := json.Marshal(resp)
	writer.Write(data)
	writer.WriteByte('\n')
	writer.Flush()
}

func formatResult(result interface{}) string {
	data, _ := json.MarshalIndent(result, "", "  ")
	return string(data)
}
