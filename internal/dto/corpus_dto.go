package dto

import "github.com/google/uuid"

// CorpusDocument mirrors one entry of the corpus JSON file.
type CorpusDocument struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	SourceLabel string `json:"source,omitempty"`
	Url         string `json:"url,omitempty"`
}

// PublishIndexDocumentMessage is the payload of an indexing event.
type PublishIndexDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
