package m2m

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/s-pearce/ooicgsn-data-tools/internal/model"
)

// ingestRequestPath is the M2M endpoint ingest requests are POSTed to.
const ingestRequestPath = "/api/m2m/12589/ingestrequest/"

// maxErrorBody caps how much of an error response body is kept for context.
const maxErrorBody = 512

// SubmissionError reports a non-2xx status from the ingestion API.
type SubmissionError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *SubmissionError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("ingest request rejected: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("ingest request rejected: %s", e.Status)
}

// ResponseFormatError reports a success status whose body was not a JSON
// object.
type ResponseFormatError struct {
	Err error
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("ingest response is not a JSON object: %s", e.Err)
}

func (e *ResponseFormatError) Unwrap() error {
	return e.Err
}

// Client submits ingest requests to the OOINet M2M API using basic auth
// with the operator's API key and token.
type Client struct {
	baseURL string
	key     string
	token   string
	http    *http.Client
}

// New returns a Client for the given base URL. A zero timeout leaves the
// request unbounded apart from the caller's context.
func New(baseURL, key, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Submit POSTs one ingest request and returns the decoded response fields in
// the order the server sent them. A non-2xx status yields a
// *SubmissionError; a 2xx status with a body that is not a JSON object
// yields a *ResponseFormatError.
func (c *Client) Submit(ctx context.Context, req *model.IngestRequest) ([]model.ResponseField, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode ingest request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ingestRequestPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build ingest request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.key, c.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("post ingest request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &SubmissionError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	fields, err := decodeObject(resp.Body)
	if err != nil {
		return nil, &ResponseFormatError{Err: err}
	}
	return fields, nil
}

// decodeObject decodes a JSON object into its fields, preserving key order.
// The result-file column order follows the response, so a plain map decode
// will not do.
func decodeObject(r io.Reader) ([]model.ResponseField, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, found %v", tok)
	}

	var fields []model.ResponseField
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, found %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		fields = append(fields, model.ResponseField{Name: key, Value: renderValue(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

// renderValue turns one JSON value into the string written to the result
// file: strings verbatim, anything else in its raw JSON form.
func renderValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
