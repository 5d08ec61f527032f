// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"brine/internal/lsp"
)

const lsName = "brine" // Name identifier for the language server

var (
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)

	brineHandler := lsp.NewBrineHandler()

	handler = protocol.Handler{
		Initialize:            brineHandler.Initialize,
		Initialized:           brineHandler.Initialized,
		Shutdown:              brineHandler.Shutdown,
		SetTrace:              brineHandler.SetTrace,
		TextDocumentDidOpen:   brineHandler.TextDocumentDidOpen,
		TextDocumentDidClose:  brineHandler.TextDocumentDidClose,
		TextDocumentDidChange: brineHandler.TextDocumentDidChange,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting Brine LSP server...")

	// Serve over standard input/output, the transport editors use for LSP.
	err := s.RunStdio()
	if err != nil {
		log.Println("Error starting Brine LSP server:", err)
		os.Exit(1)
	}
}
