package storkitty

import (
	"io"
	"net/http"
	"net/url"
	"strings"
)

func parseURI(uri string) (u *url.URL, err error) {
	if !strings.Contains(uri, "://") {
		uri = "http://" + uri
	}
	u, err = url.Parse(uri)
	if err == nil && u.Scheme == "" {
		u.Scheme = "http"
	}
	return
}

// encodeURI joins endpoint and the destination path onto base. Each segment
// of path is escaped on its own, so "/" keeps separating directories.
func encodeURI(base url.URL, endpoint, path string) string {
	segments := []string{endpoint}
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	base.Path = strings.TrimSuffix(base.Path, "/") + "/" + strings.Join(segments, "/")
	base.RawPath = ""
	return base.String()
}

func valid(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || '.' == c || '-' == c || '_' == c
}

// normalizeName keeps only characters safe inside a Content-Disposition
// header. The real name travels URL-encoded in the filename field.
func normalizeName(st string) string {
	for _, _c := range st {
		if !valid(_c) {
			var sb strings.Builder
			sb.Grow(len(st))

			for _, c := range st {
				if valid(c) {
					_, _ = sb.WriteRune(c)
				}
			}

			return sb.String()
		}
	}
	return st
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

func readAll(r *http.Response) (body []byte, statusCode int, err error) {
	statusCode = r.StatusCode
	body, err = io.ReadAll(r.Body)
	drainAndClose(r.Body)
	return
}
