package models

const (
	// StatusProcessed is the only document status in use; records are written
	// once, after the whole pipeline has succeeded.
	StatusProcessed = "processed"

	// NoMatchResponse is returned when the index yields nothing for a query.
	// No generation call is made in that case.
	NoMatchResponse = "No relevant documents found for your query. Please upload documents first or try a different query."

	// PreviewEllipsis marks truncated chunk previews in source attributions.
	PreviewEllipsis = "..."
)

var (
	RAGPromptTemplate = `You are a helpful AI assistant. Use the following pieces of context to answer the question at the end.
If you don't know the answer, just say that you don't know, don't try to make up an answer.

Context:
%s

Question: %s

Answer:
`
)
