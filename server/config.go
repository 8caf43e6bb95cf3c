package server

// Config is the HTTP server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string

	// MaxUploadBytes caps the request body. Zero uses DefaultMaxUploadBytes.
	MaxUploadBytes int
}

// DefaultMaxUploadBytes fits full-resolution phone photos.
const DefaultMaxUploadBytes = 20 << 20
