// Package digester computes content digests. Sum backs the "hash"
// template helper with a named algorithm and output encoding;
// CalculateDigest and Unchanged let writers skip files whose content
// would not change.
package digester
