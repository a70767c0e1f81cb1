package model

type Comment struct {
	ID             string `json:"id"`
	DocumentID     string `json:"document_id"`
	ShareID        string `json:"share_id"`
	AuthorName     string `json:"author_name"`
	AuthorEmail    string `json:"author_email"`
	Content        string `json:"content"`
	SelectionStart int    `json:"selection_start"`
	SelectionEnd   int    `json:"selection_end"`
	SelectionText  string `json:"selection_text"`
	Resolved       int    `json:"resolved"`
	Ctime          int64  `json:"ctime"`
	Mtime          int64  `json:"mtime"`
}
