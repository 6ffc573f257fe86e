// Package dataset handles the files a bootstrap run consumes: the document
// dataset (JSON array or newline-delimited JSON, sniffed automatically) and
// the optional embeddings side file (newline-delimited {id, vector} records).
//
// The central operation is Merge, a left join of embeddings onto documents by
// identifier: matched documents gain a "vector" field, unmatched documents
// pass through unchanged. Vector values are rounded to 12 decimals so every
// engine indexes identical numbers, and the vector dimension reported to
// schema registration is the length of the first embedding record.
//
//	loader := dataset.NewLoader(log)
//	docs, err := loader.DocumentsFromFile("/opt/app/data/dataset.json")
//	emb, err := loader.EmbeddingsFromFile("/opt/app/embeddings/documents_embeddings.jsonl")
//	if !emb.Empty() {
//		docs = loader.Merge(docs, emb)
//	}
package dataset
