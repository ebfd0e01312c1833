// Package testutil gives tests access to the shared sample programs.
package testutil

import (
	"embed"
	"io/fs"
	"path"
	"testing"
)

//go:embed testdata/*.dsc
var samplesFS embed.FS

// Sample returns the named sample program, failing tb if it does not exist.
func Sample(tb testing.TB, name string) []byte {
	tb.Helper()
	data, err := fs.ReadFile(samplesFS, path.Join("testdata", name))
	if err != nil {
		tb.Fatalf("failed to read sample program '%s': %v", name, err)
	}
	return data
}

// Samples returns the names of all embedded sample programs in lexical order.
func Samples() []string {
	entries, err := fs.ReadDir(samplesFS, "testdata")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
