package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"ptc/pptx"
)

func main() {
	if len(os.Args) != 2 {
		_, _ = fmt.Fprintf(os.Stderr, "usage: pptxdump <file.pptx>\n")
		os.Exit(2)
	}

	path := os.Args[1]
	prs, err := pptx.Open(path, zap.NewNop())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "open %s: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Print(prs.String())
}
