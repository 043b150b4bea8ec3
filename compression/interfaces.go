// Package compression wraps snapshot payloads for callers that store or ship
// them in bulk.
package compression

type Compressor interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}
