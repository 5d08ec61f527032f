// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"brine/internal/graph"
	"brine/internal/parser"
)

const PROMPT = ">> "
const CONTINUE = ".. "

// Start reads Brine programs from in and prints their graphs. A program is
// a block, so input is accumulated until the braces balance out.
func Start(in io.Reader) {
	scanner := bufio.NewScanner(in)

	var buffer strings.Builder
	depth := 0

	fmt.Print(PROMPT)
	for scanner.Scan() {
		line := scanner.Text()
		buffer.WriteString(line)
		buffer.WriteString("\n")
		depth += strings.Count(line, "{") - strings.Count(line, "}")

		if depth > 0 {
			fmt.Print(CONTINUE)
			continue
		}

		source := strings.TrimSpace(buffer.String())
		buffer.Reset()
		depth = 0

		if source == "" {
			fmt.Print(PROMPT)
			continue
		}

		result, err := parser.Parse(source)
		if err != nil {
			fmt.Printf("error: %v\n", err)
		} else {
			fmt.Printf("GRAPH:\n%s", graph.Print(result.End))
		}
		fmt.Print(PROMPT)
	}
}
