package model

type Tag struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Ctime  int64  `json:"ctime"`
}

type DocumentTag struct {
	UserID     string `json:"user_id"`
	DocumentID string `json:"document_id"`
	TagID      string `json:"tag_id"`
}
