// Package llm provides language model clients and the classification
// orchestrator that turns a transaction description into a normalized
// business/personal classification. It supports multiple providers with
// retry logic, rate limiting, and response caching.
package llm
