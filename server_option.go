package storkitty

// ServerOption configures a Server.
type ServerOption func(s *Server)

// WithServerAuthToken authenticates every request with a bearer token.
func WithServerAuthToken(token string) ServerOption {
	return func(s *Server) {
		s.authToken = token
	}
}

// WithServerBufferPool keeps up to poolSize buffers of bufferSize bytes for
// assembling chunk uploads. bufferSize should be a little over the uploader's
// chunk size.
func WithServerBufferPool(poolSize, bufferSize int) ServerOption {
	return func(s *Server) {
		s.poolSize, s.bufferSize = poolSize, bufferSize
	}
}
