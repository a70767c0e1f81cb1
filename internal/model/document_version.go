package model

type DocumentVersion struct {
	ID            string `json:"id"`
	DocumentID    string `json:"document_id"`
	VersionNumber int    `json:"version_number"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Annotation    string `json:"annotation"`
	CreatedBy     string `json:"created_by"`
	Ctime         int64  `json:"ctime"`
}

// DocumentVersionSummary carries version metadata without the content payload,
// optionally enriched with the creator's display name.
type DocumentVersionSummary struct {
	ID            string `json:"id"`
	DocumentID    string `json:"document_id"`
	VersionNumber int    `json:"version_number"`
	Title         string `json:"title"`
	Annotation    string `json:"annotation"`
	CreatedBy     string `json:"created_by"`
	CreatedByName string `json:"created_by_name,omitempty"`
	Ctime         int64  `json:"ctime"`
}
