// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"brine/internal/graph"
	"brine/internal/parser"
)

// sample exercises most of the language: external input, constant folding
// inside both branches, and a phi merging the two folded values.
const sample = `{
    int x = READ_INT;
    int y = 10;
    if (x < 2) {
        y = y + 3;
    } else {
        y = y - 3;
    }
    return x + y;
}`

func main() {
	startTime := time.Now()

	path := "<sample>"
	source := sample
	if len(os.Args) >= 2 {
		path = os.Args[1]
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
			os.Exit(1)
		}
		source = string(data)
	}

	result, err := parser.Parse(source)
	duration := formatDuration(time.Since(startTime))

	if err != nil {
		fmt.Print(formatParseError(path, err, source))
		color.Red("Compilation failed after %s", duration)
		os.Exit(1)
	}

	fmt.Print(graph.Print(result.End))
	color.Green("Successfully processed %s in %s", path, duration)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

func formatParseError(path string, err error, source string) string {
	pe, ok := err.(*parser.ParseError)
	if !ok {
		return fmt.Sprintf("error: %v\n", err)
	}

	lines := strings.Split(source, "\n")
	pos := pe.Position

	var lineContent string
	if pos.Line-1 < len(lines) && pos.Line-1 >= 0 {
		lineContent = lines[pos.Line-1]
	}

	marker := strings.Repeat(" ", max(0, pos.Column-1)) + "^"

	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	lineNumberWidth := len(fmt.Sprintf("%d", pos.Line))
	if lineNumberWidth < 3 {
		lineNumberWidth = 3
	}
	indent := strings.Repeat(" ", lineNumberWidth)

	return fmt.Sprintf(
		"%s: %s\n%s┌─ %s:%d:%d\n%s│\n%3d│%s\n%s│%s\n\n",
		red("error"),
		pe.Message,
		indent,
		path, pos.Line, pos.Column,
		indent,
		pos.Line, lineContent,
		indent,
		bold(marker),
	)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
