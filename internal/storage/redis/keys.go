package redis

const (
	// KeyPrefixBlob is the prefix for blob hashes
	KeyPrefixBlob = "heartgate:blob:"
	// KeyAllBlobs is the set holding every stored key
	KeyAllBlobs = "heartgate:blobs:all"
)

// BlobKey returns the Redis key for a blob by storage key.
func BlobKey(key string) string {
	return KeyPrefixBlob + key
}
