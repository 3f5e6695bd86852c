// Package hash computes content hashes and entity tags for API responses.
package hash
