package cache

import "github.com/vmihailenco/msgpack/v5"

// Encode serializes v for storage. MessagePack keeps cached scenes compact;
// they carry thousands of coordinates that JSON would spell out in text.
func Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode is the inverse of [Encode].
func Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
