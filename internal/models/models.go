package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Chunk is a bounded, overlapping segment of a document's extracted text.
// Index is 1-based within the source document.
type Chunk struct {
	Source  string
	Index   int
	Content string
}

// DocumentMetadata is the persisted record for a successfully ingested document.
// Filename is the logical primary key; a second upload with the same filename
// is rejected, never overwritten.
type DocumentMetadata struct {
	bun.BaseModel `bun:"table:documents_metadata,alias:dm" json:"-"`

	ID             string    `bun:"id,pk" json:"metadata_id"`
	Filename       string    `bun:"filename,notnull,unique" json:"filename"`
	OriginalSizeKB int64     `bun:"original_size_kb,notnull" json:"original_size_kb"`
	UploadDate     time.Time `bun:"upload_date,notnull" json:"upload_date"`
	NumChunks      int       `bun:"num_chunks,notnull" json:"num_chunks"`
	Status         string    `bun:"status,notnull" json:"status"`
	FilePath       string    `bun:"file_path,notnull" json:"file_path"`
}

// SearchResult is one retrieved chunk with its similarity score.
// Score is cosine similarity; results are ordered by decreasing score.
type SearchResult struct {
	Content    string
	Source     string
	ChunkIndex int
	Score      float32
}

// ChunkMetadata identifies where a retrieved chunk came from.
type ChunkMetadata struct {
	Source     string `json:"source"`
	ChunkIndex int    `json:"chunk_index"`
}

// SourceDocument is the per-chunk attribution returned alongside an answer.
type SourceDocument struct {
	ContentPreview string        `json:"content_preview"`
	Metadata       ChunkMetadata `json:"metadata"`
	RelevanceScore float32       `json:"relevance_score"`
}

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	Response        string           `json:"response"`
	SourceDocuments []SourceDocument `json:"source_documents"`
}

type UploadResponse struct {
	Message    string `json:"message"`
	MetadataID string `json:"metadata_id"`
	NumChunks  int    `json:"num_chunks"`
}
