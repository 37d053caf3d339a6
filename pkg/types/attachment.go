package types

// Attachment is a user-selected file. Before finalization it carries the raw
// bytes; once uploaded only StoredPath is kept on the persisted record.
type Attachment struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mimeType"`
	Content    []byte `json:"content,omitempty"`
	StoredPath string `json:"storedPath,omitempty"`
}

func (a Attachment) IsStored() bool {
	return a.StoredPath != "" && len(a.Content) == 0
}

type AttachmentCategory string

// Storage prefixes by document category
const (
	CategoryLogos        AttachmentCategory = "logos"
	CategoryPhotographs  AttachmentCategory = "photographs"
	CategoryCertificates AttachmentCategory = "certificates"
	CategoryLicenses     AttachmentCategory = "licenses"
	CategoryDocuments    AttachmentCategory = "documents"
)
