package config

import (
	"os"
	"testing"
)

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains:
// it changes the working directory and restores it on test cleanup.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
