package journal

import (
	"context"
	"testing"
)

// newTestJournal returns a migrated in-memory journal closed at test end.
func newTestJournal(t *testing.T) *Journal {
	t.Helper()

	j, err := NewInMemory()
	if err != nil {
		t.Fatalf("creating in-memory journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })

	if _, err := j.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating journal: %v", err)
	}

	return j
}
