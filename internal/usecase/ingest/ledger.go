package ingest

import (
	"log"
	"os"
)

// cleanupLedger accumulates the local files a pipeline run touched. Cleanup
// runs whether the pipeline succeeded or failed. Entries registered as not
// deletable are tracked for visibility only; the raw recording's lifecycle
// belongs to the caller that supplied it.
type cleanupLedger struct {
	entries []ledgerEntry
}

type ledgerEntry struct {
	path      string
	deletable bool
}

func newCleanupLedger() *cleanupLedger {
	return &cleanupLedger{}
}

func (l *cleanupLedger) register(path string, deletable bool) {
	l.entries = append(l.entries, ledgerEntry{path: path, deletable: deletable})
}

func (l *cleanupLedger) cleanup() {
	for _, e := range l.entries {
		if !e.deletable {
			continue
		}
		if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
			log.Printf("could not remove temp file %q: %v", e.path, err)
		}
	}
}
