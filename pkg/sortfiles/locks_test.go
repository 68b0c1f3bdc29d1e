package sortfiles_test

import (
	"sync"
	"testing"

	"github.com/arthur-debert/sortfiles/pkg/sortfiles"
)

func TestLockRegistry(t *testing.T) {
	r := sortfiles.NewLockRegistry()

	t.Run("same name returns same lock", func(t *testing.T) {
		if r.LockFor("report.txt") != r.LockFor("report.txt") {
			t.Error("Expected identical lock for repeated lookups")
		}
	})

	t.Run("names are case folded", func(t *testing.T) {
		if r.LockFor("Report.TXT") != r.LockFor("report.txt") {
			t.Error("Expected case variants to share a lock")
		}
	})

	t.Run("distinct names never share", func(t *testing.T) {
		if r.LockFor("a.txt") == r.LockFor("b.txt") {
			t.Error("Expected distinct locks for distinct names")
		}
	})

	if r.Len() != 3 {
		t.Errorf("Expected 3 registered names, got %d", r.Len())
	}
}

func TestLockRegistryConcurrentLookup(t *testing.T) {
	r := sortfiles.NewLockRegistry()

	const goroutines = 64
	locks := make([]*sync.Mutex, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			locks[i] = r.LockFor("shared.bin")
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if locks[i] != locks[0] {
			t.Fatalf("Lookup %d returned a different lock instance", i)
		}
	}
	if r.Len() != 1 {
		t.Errorf("Expected a single entry, got %d", r.Len())
	}
}
