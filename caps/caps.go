// Package caps names the well-known capability identifiers used in embedded
// module claims.
//
// Capability strings are opaque to the embedding and verification core; this
// vocabulary exists for tooling and for hosts that grant capabilities by
// name. Custom identifiers are always permitted.
package caps

const (
	// Messaging grants access to a message broker.
	Messaging = "messaging"
	// KeyValue grants access to a key-value store.
	KeyValue = "keyvalue"
	// HTTPServer allows the module to receive HTTP requests.
	HTTPServer = "httpserver"
	// HTTPClient allows the module to make outbound HTTP requests.
	HTTPClient = "httpclient"
	// BlobStore grants access to binary object storage.
	BlobStore = "blobstore"
	// EventStreams grants access to an append-only event stream.
	EventStreams = "eventstreams"
	// Logging allows the module to write to the host's log.
	Logging = "logging"
)

var names = map[string]string{
	Messaging:    "Messaging",
	KeyValue:     "Key-Value Store",
	HTTPServer:   "HTTP Server",
	HTTPClient:   "HTTP Client",
	BlobStore:    "Blob Store",
	EventStreams: "Event Streams",
	Logging:      "Logging",
}

// Name returns a human-readable label for a capability identifier. Unknown
// identifiers are returned unchanged.
func Name(cap string) string {
	if n, ok := names[cap]; ok {
		return n
	}
	return cap
}
