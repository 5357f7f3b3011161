// Package rag provides the retrieval core for the Daybook assistant.
//
// Heterogeneous JSON records (wearable samples, location pings, profile
// facts, ratings) are stored next to their embedding vectors in an Index
// and retrieved by nearest-neighbor search.
//
// Architecture:
//   - Record: one structured fact, schema-free JSON object
//   - Embedder: text-to-vector conversion (mock for tests, OpenAI or ONNX
//     for real deployments)
//   - Index: vector storage plus k-NN search (flat exact scan by default,
//     chromem-go as an embedded alternative)
//   - Retriever: embeds a query and delegates to the Index
//
// The response engine that turns retrieved records into answers lives in
// package chatbot.
package rag
