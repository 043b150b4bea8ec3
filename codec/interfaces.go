// Package codec decouples timestamp and snapshot serialization from the wire
// format. Embedding systems pick the backend that matches the rest of their
// stack; every backend round-trips field values bit-identically.
package codec

// Interface for decoupling the message serialization and deserialization
type Serializer interface {
	Name() string
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}
