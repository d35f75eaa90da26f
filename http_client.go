package storkitty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"

	"github.com/oxtoacart/bpool"

	"github.com/AlanLang/storkitty-v2/model"
)

type httpClient struct {
	client    *http.Client
	authToken string
	pool      *bpool.SizedBufferPool
}

func newHTTPClient(client *http.Client, opts ...HttpClientOption) *httpClient {
	if client == nil {
		client = http.DefaultClient
	}
	c := &httpClient{client: client}
	for _, opt := range opts {
		opt(c)
	}
	if c.pool == nil {
		c.pool = newBufferPoolForUploading(0, 0)
	}
	return c
}

func (c *httpClient) Close() (err error) {
	c.client.CloseIdleConnections()
	return
}

func (c *httpClient) do(req *http.Request) (body []byte, statusCode int, err error) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return
	}

	body, statusCode, err = readAll(resp)
	if err == nil && statusCode >= http.StatusBadRequest {
		err = &StatusError{Method: req.Method, URL: req.URL.String(), Code: statusCode, Body: string(body)}
	}
	return
}

// upload posts fields and the content of fileReader as a multipart form.
// The form is assembled in a pooled buffer which is released once the
// request has completed.
func (c *httpClient) upload(ctx context.Context, url string, fields url.Values, filename string, fileReader io.Reader) (respBody []byte, statusCode int, err error) {
	buf := c.pool.Get()
	defer c.pool.Put(buf)

	contentType, err := writeMultipart(buf, fields, filename, fileReader)
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(req)
}

func (c *httpClient) postJSON(ctx context.Context, url string, v interface{}) (respBody []byte, statusCode int, err error) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func writeMultipart(w io.Writer, fields url.Values, filename string, fileReader io.Reader) (contentType string, err error) {
	mw := multipart.NewWriter(w)

	// stable field order
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, model.FieldFile, normalizeName(filename)))
	h.Set("Content-Type", "application/octet-stream")

	part, err := mw.CreatePart(h)
	if err == nil {
		_, err = io.Copy(part, fileReader)
	}
	for _, k := range keys {
		if err != nil {
			break
		}
		err = mw.WriteField(k, fields.Get(k))
	}

	if err != nil {
		_ = mw.Close()
		return
	}
	if err = mw.Close(); err == nil {
		contentType = mw.FormDataContentType()
	}

	return
}
