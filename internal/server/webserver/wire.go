package webserver

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLineBytes limits the request line and each header line.
const DefaultMaxLineBytes = 8 * 1024

var (
	// ErrNoRequest means the client sent nothing (or only a blank line)
	// before closing. No response is written.
	ErrNoRequest = errors.New("webserver: empty request")

	// ErrMalformedRequest means the request line has fewer than three tokens.
	ErrMalformedRequest = errors.New("webserver: malformed request line")

	// ErrLineTooLong means a request or header line exceeded the limit.
	ErrLineTooLong = errors.New("webserver: line too long")
)

// Request is a parsed request head.
type Request struct {
	Method  string
	Target  string // path with query string, as sent
	Path    string // Target up to the first '?'
	Version string

	// Query holds decoded query parameters; the last occurrence of a key wins.
	Query map[string]string

	// Headers holds header values keyed by lowercase name.
	Headers map[string]string
}

// Header returns the value of the named header, case-insensitively.
func (r *Request) Header(name string) string {
	return r.Headers[strings.ToLower(name)]
}

// ReadRequest reads a request line and headers from br.
//
// Headers are consumed before the request line is validated, so a malformed
// request line still drains the header block. Header lines without ": " are
// dropped. The end of input terminates the header block like a blank line.
func ReadRequest(br *bufio.Reader, maxLine int) (*Request, error) {
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}

	line, err := readLine(br, maxLine)
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return nil, ErrNoRequest
		}
		if !errors.Is(err, io.EOF) {
			return nil, err
		}
	}
	if strings.TrimSpace(line) == "" {
		return nil, ErrNoRequest
	}

	headers := make(map[string]string)
	for {
		h, err := readLine(br, maxLine)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if h == "" {
			break
		}
		if name, value, ok := strings.Cut(h, ": "); ok {
			headers[strings.ToLower(name)] = value
		}
		if err != nil {
			break
		}
	}

	parts := splitRequestLine(line)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequest, line)
	}

	target := parts[1]
	path, rawQuery, _ := strings.Cut(target, "?")

	return &Request{
		Method:  parts[0],
		Target:  target,
		Path:    path,
		Version: parts[2],
		Query:   ParseQuery(rawQuery),
		Headers: headers,
	}, nil
}

// splitRequestLine splits on single spaces and drops trailing empty tokens.
// Runs of spaces inside the line produce empty tokens.
func splitRequestLine(line string) []string {
	parts := strings.Split(line, " ")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// ParseQuery decodes a raw query string ("a=1&b=2", without the '?').
//
// Pairs without '=' are dropped. Keys and values are percent-decoded as
// UTF-8 with '+' as space; when either fails to decode, the raw pair is kept.
func ParseQuery(rawQuery string) map[string]string {
	params := make(map[string]string)
	if rawQuery == "" {
		return params
	}

	for _, pair := range strings.Split(rawQuery, "&") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		dk, errK := decodeComponent(k)
		dv, errV := decodeComponent(v)
		if errK != nil || errV != nil {
			params[k] = v
			continue
		}
		params[dk] = dv
	}
	return params
}

func decodeComponent(s string) (string, error) {
	d, err := url.QueryUnescape(s)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(d) {
		return "", fmt.Errorf("invalid UTF-8 in %q", s)
	}
	return d, nil
}

// readLine reads one line terminated by "\n" (an optional preceding "\r" is
// removed). At end of input it returns any partial line together with io.EOF.
func readLine(r *bufio.Reader, maxLen int) (string, error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		buf = append(buf, frag...)
		if len(buf) > maxLen {
			return "", fmt.Errorf("%w: limit %d", ErrLineTooLong, maxLen)
		}
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return string(trimEOL(buf)), err
	}
	return string(trimEOL(buf)), nil
}

func trimEOL(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte("\n"))
	return bytes.TrimSuffix(b, []byte("\r"))
}

// Status codes produced by the server.
const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusInternalServerError = 500
)

// StatusText returns the reason phrase for code, or "Unknown".
func StatusText(code int) string {
	switch code {
	case StatusOK:
		return "OK"
	case StatusBadRequest:
		return "Bad Request"
	case StatusNotFound:
		return "Not Found"
	case StatusInternalServerError:
		return "Internal Server Error"
	default:
		return "Unknown"
	}
}

// Content types used by the dispatcher.
const (
	ContentTypeJSON = "application/json; charset=UTF-8"
	ContentTypeText = "text/plain; charset=UTF-8"
	ContentTypeHTML = "text/html"
)

// Response is a complete response ready to be written.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// WriteResponse writes the status line, fixed headers and body to w.
// The caller flushes.
func WriteResponse(w *bufio.Writer, resp *Response) error {
	var b strings.Builder
	b.WriteString("HTTP/1.1 ")
	b.WriteString(strconv.Itoa(resp.Status))
	b.WriteByte(' ')
	b.WriteString(StatusText(resp.Status))
	b.WriteString("\r\n")
	b.WriteString("Content-Type: " + resp.ContentType + "\r\n")
	b.WriteString("Content-Length: " + strconv.Itoa(len(resp.Body)) + "\r\n")
	b.WriteString("Connection: close\r\n")
	b.WriteString("Access-Control-Allow-Origin: *\r\n")
	b.WriteString("Access-Control-Allow-Methods: GET, POST, OPTIONS\r\n")
	b.WriteString("Access-Control-Allow-Headers: Content-Type\r\n")
	b.WriteString("\r\n")

	if _, err := w.WriteString(b.String()); err != nil {
		return err
	}
	_, err := w.Write(resp.Body)
	return err
}

const errorPageTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Error %d</title>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .error { color: #d32f2f; }
        .code { background: #f5f5f5; padding: 20px; border-radius: 5px; }
    </style>
</head>
<body>
    <h1 class="error">Error %d</h1>
    <div class="code">
        <p><strong>Message:</strong> %s</p>
        <p><strong>Server:</strong> MicroSpring/1.0</p>
    </div>
</body>
</html>
`

// ErrorResponse renders the fixed HTML error page for status.
func ErrorResponse(status int, message string) *Response {
	return &Response{
		Status:      status,
		ContentType: ContentTypeHTML,
		Body:        []byte(fmt.Sprintf(errorPageTemplate, status, status, html.EscapeString(message))),
	}
}
