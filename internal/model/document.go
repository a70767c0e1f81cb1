package model

const (
	DocumentStatusDraft     = "draft"
	DocumentStatusPublished = "published"
)

type Document struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	FolderID         string `json:"folder_id"`
	Title            string `json:"title"`
	Content          string `json:"content"`
	Status           string `json:"status"`
	PublishedContent string `json:"published_content"`
	PublishedAt      int64  `json:"published_at"`
	Pinned           int    `json:"pinned"`
	State            int    `json:"state"`
	Ctime            int64  `json:"ctime"`
	Mtime            int64  `json:"mtime"`
}
