package storkitty

import "github.com/oxtoacart/bpool"

type HttpClientOption func(client *httpClient)

// WithHttpClientAuthToken sends the token as a bearer token with every request.
func WithHttpClientAuthToken(token string) HttpClientOption {
	return func(client *httpClient) {
		client.authToken = token
	}
}

// WithHttpClientBufferPool sets the pool multipart bodies are assembled in.
func WithHttpClientBufferPool(pool *bpool.SizedBufferPool) HttpClientOption {
	return func(client *httpClient) {
		client.pool = pool
	}
}
