package storkitty

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/AlanLang/storkitty-v2/model"
)

const (
	uploadEndpoint = "file/upload"
	abortEndpoint  = "file/abort"
)

// Server is the Transport for the storkitty HTTP API.
type Server struct {
	base       *url.URL
	client     *httpClient
	authToken  string
	poolSize   int
	bufferSize int
}

// NewServer creates a transport for the API rooted at u, for example
// "http://localhost:3000/api". A nil client selects http.DefaultClient.
// Timeouts, if any, are the client's business.
func NewServer(u string, client *http.Client, opts ...ServerOption) (s *Server, err error) {
	base, err := parseURI(u)
	if err != nil {
		return
	}

	s = &Server{
		base: base,
	}
	for _, opt := range opts {
		opt(s)
	}

	clientOpts := []HttpClientOption{
		WithHttpClientBufferPool(newBufferPoolForUploading(s.poolSize, s.bufferSize)),
	}
	if s.authToken != "" {
		clientOpts = append(clientOpts, WithHttpClientAuthToken(s.authToken))
	}
	s.client = newHTTPClient(client, clientOpts...)

	return s, nil
}

// Close idle connections.
func (s *Server) Close() (err error) {
	if s.client != nil {
		err = s.client.Close()
	}
	return
}

// UploadChunk posts one chunk to file/upload/{path}.
func (s *Server) UploadChunk(ctx context.Context, path string, form model.ChunkForm, body io.Reader) (err error) {
	_, _, err = s.client.upload(ctx, encodeURI(*s.base, uploadEndpoint, path), form.Fields(), form.Filename, body)
	return
}

// NotifyAbort posts {"file": name} to file/abort/{path}.
func (s *Server) NotifyAbort(ctx context.Context, path, name string) (err error) {
	_, _, err = s.client.postJSON(ctx, encodeURI(*s.base, abortEndpoint, path), model.AbortRequest{File: name})
	return
}
