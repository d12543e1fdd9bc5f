package options

import (
	"github.com/KirkDiggler/lunchwheel/internal/models"
	"github.com/KirkDiggler/lunchwheel/internal/repositories/document"
)

// Reconcile turns a remote snapshot into the next local state.
// A missing document yields seed=true and no state; otherwise the snapshot
// replaces every list wholesale, and modes absent remotely become empty.
func Reconcile(snapshot *document.Snapshot) (models.SharedDocument, bool) {
	if snapshot == nil || !snapshot.Exists {
		return nil, true
	}

	doc := make(models.SharedDocument, len(models.Modes))
	for _, mode := range models.Modes {
		doc[mode] = snapshot.Document.Options(mode).Clone()
	}

	return doc, false
}
