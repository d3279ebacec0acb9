package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/linefold"
)

// Regenerates the .golden files used by the regression tests. Run from
// the repository root after an intentional output change.
func main() {
	widths := []int{20, 40, 60}
	root := "testdata"
	entries, err := os.ReadDir(root)
	if err != nil {
		fatalf("read %s: %v", root, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(root, entry.Name()))
	}
	if len(paths) == 0 {
		fatalf("no text files found under %s", root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		base := strings.TrimSuffix(filepath.Base(path), ".txt")
		for _, width := range widths {
			var out bytes.Buffer
			err := linefold.Fold(linefold.FoldRequest{
				Reader:      bytes.NewReader(src),
				Writer:      &out,
				Columns:     width,
				Indent:      "  ",
				IndentLevel: 1,
			})
			if err != nil {
				fatalf("fold %s width %d: %v", path, width, err)
			}
			goldenPath := filepath.Join(root, fmt.Sprintf("%s.w%d.golden", base, width))
			if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
				fatalf("write %s: %v", goldenPath, err)
			}
			fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
		}
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
