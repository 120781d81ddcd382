package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// JSONResponse wraps a typed JSON response.
type JSONResponse[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Data is the decoded response body.
	Data T
}

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](ctx context.Context, c *Client, path string) (*JSONResponse[T], error) {
	return doJSON[T](ctx, c, Request{Method: http.MethodGet, Path: path})
}

// Post performs a POST request with a JSON body and decodes the response into type T.
func Post[T any](ctx context.Context, c *Client, path string, body any) (*JSONResponse[T], error) {
	return doJSON[T](ctx, c, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body and decodes the response into type T.
func Put[T any](ctx context.Context, c *Client, path string, body any) (*JSONResponse[T], error) {
	return doJSON[T](ctx, c, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request with a JSON body, query parameters, and
// decodes the response into type T.
func Patch[T any](ctx context.Context, c *Client, path string, body any, query map[string]string) (*JSONResponse[T], error) {
	return doJSON[T](ctx, c, Request{Method: http.MethodPatch, Path: path, Body: body, Query: query})
}

// PutBytes performs a raw PUT of a byte payload against an absolute URL,
// bypassing client auth. Used for transfers to pre-signed upload targets.
func PutBytes(ctx context.Context, c *Client, url string, data []byte, headers map[string]string) error {
	_, err := c.Do(ctx, Request{
		Method:  http.MethodPut,
		Path:    url,
		Body:    data,
		Headers: headers,
		Auth:    &AuthConfig{}, // signed URL carries its own credentials
	})
	return err
}

// doJSON executes a request and decodes the JSON response.
func doJSON[T any](ctx context.Context, c *Client, req Request) (*JSONResponse[T], error) {
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	if _, ok := req.Headers["Accept"]; !ok {
		req.Headers["Accept"] = "application/json"
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, fmt.Errorf("httpclient: decode response: %w", err)
		}
	}

	return &JSONResponse[T]{StatusCode: resp.StatusCode, Data: data}, nil
}
