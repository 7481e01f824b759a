package validators

import (
	"github.com/gabriel-vasile/mimetype"

	"github.com/MKhiriev/flow-bank/models"
)

// MaxDocumentSize is the largest accepted ID document, in bytes.
const MaxDocumentSize = 5 << 20

var allowedDocumentTypes = []string{"image/jpeg", "image/png", "application/pdf"}

// DocumentMIMEType returns the type of doc: sniffed from the content when
// bytes are present, otherwise the declared type.
func DocumentMIMEType(doc models.IDDocument) string {
	if len(doc.Content) > 0 {
		return mimetype.Detect(doc.Content).String()
	}
	return doc.MIMEType
}

func documentSize(doc models.IDDocument) int64 {
	if len(doc.Content) > 0 {
		return int64(len(doc.Content))
	}
	return doc.Size
}

func validateDocument(doc *models.IDDocument) error {
	if doc == nil || (doc.Name == "" && len(doc.Content) == 0 && doc.Size == 0) {
		return ErrMissingDocument
	}

	allowed := false
	if len(doc.Content) > 0 {
		detected := mimetype.Detect(doc.Content)
		for _, t := range allowedDocumentTypes {
			if detected.Is(t) {
				allowed = true
				break
			}
		}
	} else {
		for _, t := range allowedDocumentTypes {
			if doc.MIMEType == t {
				allowed = true
				break
			}
		}
	}
	if !allowed {
		return ErrUnsupportedDocument
	}

	if documentSize(*doc) > MaxDocumentSize {
		return ErrDocumentTooLarge
	}

	return nil
}
