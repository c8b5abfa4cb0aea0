package test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteKnowledgeFile writes facts one per line into dir and returns the
// file path.
func WriteKnowledgeFile(t *testing.T, dir string, facts ...string) string {
	t.Helper()

	path := filepath.Join(dir, "sparrow_facts.txt")
	content := strings.Join(facts, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write knowledge file: %v", err)
	}
	return path
}
