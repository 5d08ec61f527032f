package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"brine/internal/lsp"
)

// notifyRecorder captures diagnostics the handler publishes.
type notifyRecorder struct {
	method string
	params *protocol.PublishDiagnosticsParams
}

func (r *notifyRecorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			r.method = method
			if p, ok := params.(*protocol.PublishDiagnosticsParams); ok {
				r.params = p
			}
		},
	}
}

func openParams(uri, text string) *protocol.DidOpenTextDocumentParams {
	return &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "brine",
			Version:    1,
			Text:       text,
		},
	}
}

func TestDidOpenPublishesNothingForValidProgram(t *testing.T) {
	handler := lsp.NewBrineHandler()
	recorder := &notifyRecorder{}

	err := handler.TextDocumentDidOpen(recorder.context(), openParams("file:///tmp/ok.br", "{ return 1 + 2; }"))
	require.NoError(t, err)

	require.NotNil(t, recorder.params, "a clean parse still publishes, with an empty list")
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, recorder.method)
	assert.Empty(t, recorder.params.Diagnostics)
}

func TestDidOpenPublishesParseError(t *testing.T) {
	handler := lsp.NewBrineHandler()
	recorder := &notifyRecorder{}

	source := "{\n  int x = 1\n}"
	err := handler.TextDocumentDidOpen(recorder.context(), openParams("file:///tmp/bad.br", source))
	require.NoError(t, err)

	require.NotNil(t, recorder.params)
	require.Len(t, recorder.params.Diagnostics, 1)

	diag := recorder.params.Diagnostics[0]
	assert.Contains(t, diag.Message, "expected ';'")
	assert.Equal(t, uint32(2), diag.Range.Start.Line, "LSP lines are zero-based")
	require.NotNil(t, diag.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
}

func TestDidChangeReparsesFullText(t *testing.T) {
	handler := lsp.NewBrineHandler()
	recorder := &notifyRecorder{}
	uri := "file:///tmp/change.br"

	err := handler.TextDocumentDidOpen(recorder.context(), openParams(uri, "{ return 1; }"))
	require.NoError(t, err)
	assert.Empty(t, recorder.params.Diagnostics)

	err = handler.TextDocumentDidChange(recorder.context(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "{ int = 1; }"},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, recorder.params)
	require.Len(t, recorder.params.Diagnostics, 1)
	assert.Contains(t, recorder.params.Diagnostics[0].Message, "expected")
}

func TestDidCloseDropsDocument(t *testing.T) {
	handler := lsp.NewBrineHandler()
	recorder := &notifyRecorder{}
	uri := "file:///tmp/close.br"

	err := handler.TextDocumentDidOpen(recorder.context(), openParams(uri, "{ }"))
	require.NoError(t, err)

	err = handler.TextDocumentDidClose(recorder.context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
}
