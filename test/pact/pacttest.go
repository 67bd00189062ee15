//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "design-library-api"
	ConsumerName = "design-portal"

	StateDesignsExist  = "designs 101 and 102 exist"
	StateDesignMissing = "no design with id 404"
)

const (
	ExistingDesignID int64 = 101
	OtherDesignID    int64 = 102
	MissingDesignID  int64 = 404
	MeetingID        int64 = 11

	ExampleVendor   = "Silk House"
	ExampleLocation = "Jaipur"
	ExampleImageURL = "https://example.pact/designs/lehenga.jpg"
	ExamplePrice    = int64(1250000)
	ExampleCategory = "Bridal"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the design portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleDesignPayload is the design body both sides agree on.
func ExampleDesignPayload(id int64) map[string]any {
	return map[string]any{
		"id":            id,
		"imageUrl":      ExampleImageURL,
		"finalPrice":    ExamplePrice,
		"category":      ExampleCategory,
		"isShortlisted": true,
		"meeting": map[string]any{
			"id":         MeetingID,
			"vendorName": ExampleVendor,
			"location":   ExampleLocation,
		},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
