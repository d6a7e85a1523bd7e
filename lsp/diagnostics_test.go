package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsStorePublishIsLastWriteWins(t *testing.T) {
	s := NewDiagnosticsStore()
	s.Publish("file:///a.go", []Diagnostic{{Message: "first"}})
	s.Publish("file:///a.go", []Diagnostic{{Message: "second"}})

	got := s.Get("file:///a.go")
	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].Message)
}

func TestDiagnosticsStorePublishEmptyClears(t *testing.T) {
	s := NewDiagnosticsStore()
	s.Publish("file:///a.go", []Diagnostic{{Message: "stale"}})
	s.Publish("file:///a.go", nil)

	assert.Empty(t, s.Get("file:///a.go"))
}

func TestDiagnosticsStoreBySeverityBuckets(t *testing.T) {
	s := NewDiagnosticsStore()
	s.Publish("file:///a.go", []Diagnostic{
		{Message: "e1", Severity: SeverityError},
		{Message: "e2", Severity: SeverityError},
		{Message: "w1", Severity: SeverityWarning},
	})

	buckets := s.BySeverity("file:///a.go")
	assert.Len(t, buckets[SeverityError], 2)
	assert.Len(t, buckets[SeverityWarning], 1)
	assert.Empty(t, buckets[SeverityHint])
}

func TestDiagnosticsStoreURIs(t *testing.T) {
	s := NewDiagnosticsStore()
	s.Publish("file:///a.go", []Diagnostic{{Message: "x"}})
	s.Publish("file:///b.go", []Diagnostic{{Message: "y"}})

	assert.ElementsMatch(t, []string{"file:///a.go", "file:///b.go"}, s.URIs())
}

func TestDiagnosticsStoreGetUnknownURIIsEmpty(t *testing.T) {
	s := NewDiagnosticsStore()
	assert.Nil(t, s.Get("file:///missing.go"))
}
