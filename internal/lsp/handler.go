// Package lsp serves Brine parse diagnostics over the Language Server
// Protocol. The front end is a single-shot parser, so the server has one
// thing to say per document: the first parse error, or nothing.
package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"brine/internal/parser"
)

// BrineHandler implements the LSP server handlers for the Brine language.
type BrineHandler struct {
	mu      sync.RWMutex
	content map[string]string
}

// NewBrineHandler creates and returns a new BrineHandler instance.
func NewBrineHandler() *BrineHandler {
	return &BrineHandler{
		content: make(map[string]string),
	}
}

// Initialize responds to the client's initialize request and advertises the
// server's capabilities: full-document sync only.
func (h *BrineHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
		},
	}, nil
}

func (h *BrineHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("Brine LSP Initialized")
	return nil
}

func (h *BrineHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("Brine LSP Shutdown")
	return nil
}

func (h *BrineHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen parses the opened document and publishes diagnostics.
func (h *BrineHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	h.setContent(params.TextDocument.URI, params.TextDocument.Text)
	h.publishDiagnostics(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

// TextDocumentDidClose drops the cached document content.
func (h *BrineHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, params.TextDocument.URI)
	return nil
}

// TextDocumentDidChange reparses on every change and republishes.
func (h *BrineHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	source, ok := h.latestText(params)
	if !ok {
		var err error
		source, err = h.readDocument(params.TextDocument.URI)
		if err != nil {
			return err
		}
	}

	h.setContent(params.TextDocument.URI, source)
	h.publishDiagnostics(ctx, params.TextDocument.URI, source)
	return nil
}

// latestText extracts the full document text from a change notification.
// The server only advertises full sync, so the last change carries the
// whole document.
func (h *BrineHandler) latestText(params *protocol.DidChangeTextDocumentParams) (string, bool) {
	for i := len(params.ContentChanges) - 1; i >= 0; i-- {
		switch change := params.ContentChanges[i].(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			return change.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				return change.Text, true
			}
		}
	}
	return "", false
}

func (h *BrineHandler) setContent(uri, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.content[uri] = text
}

func (h *BrineHandler) readDocument(rawURI string) (string, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return "", fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), nil
}

// publishDiagnostics parses the document and reports the parse error, if
// any, as a single diagnostic. A clean parse publishes an empty list so the
// client clears stale squiggles.
func (h *BrineHandler) publishDiagnostics(ctx *glsp.Context, uri string, source string) {
	diagnostics := []protocol.Diagnostic{}
	if _, err := parser.Parse(source); err != nil {
		diagnostics = append(diagnostics, toDiagnostic(err))
	}

	log.Printf("Publishing %d diagnostic(s) for %s\n", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func toDiagnostic(err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := "brine"

	message := err.Error()
	var start protocol.Position
	if pe, ok := err.(*parser.ParseError); ok {
		message = pe.Message
		// LSP positions are zero-based.
		start = protocol.Position{
			Line:      uint32(pe.Position.Line - 1),
			Character: uint32(pe.Position.Column - 1),
		}
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: start,
			End:   protocol.Position{Line: start.Line, Character: start.Character + 1},
		},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// uriToPath converts a file URI to a platform-local file path.
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
