package search

import (
	"crypto/sha256"
	"encoding/hex"
)

// computeFingerprint generates a stable hash of the document slice.
// The fingerprint changes when document content changes, letting Sync
// skip rebuilds when a refresh carried no lexical changes.
func computeFingerprint(docs []Doc) string {
	h := sha256.New()
	for _, doc := range docs {
		h.Write([]byte(doc.ID))
		h.Write([]byte{0})
		h.Write([]byte(doc.Text))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
