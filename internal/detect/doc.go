// Package detect classifies assistant-generated text as artifact-worthy
// or not.
//
// Detection is a fixed chain of heuristics evaluated in order; the first
// match wins and the ordering is part of the contract, not an implementation
// detail (a document that also contains a React import is classified by the
// earlier document rule). Each rule carries a confidence score; callers
// materialize an artifact only when the score clears the configured
// threshold. The policy deliberately prefers false negatives: a missed
// artifact costs one re-request, a spurious one costs the user figuring out
// why a canvas opened.
//
// Detection never fails. Ambiguity is resolved by rule order and the
// threshold, and unmatched input yields a zero-confidence result.
//
// All functions are pure and safe for concurrent use.
package detect
