package dao

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// ErrMalformedResponse is returned when a response body cannot be adapted into a Page.
var ErrMalformedResponse = errors.New("malformed response")

// defaultResponse is the response shape assumed when no transform is configured.
type defaultResponse struct {
	Data     []json.RawMessage `json:"data"`
	NextPage *int              `json:"nextPage"`
}

// DefaultTransform decodes a {"data": [...], "nextPage": <int|null>} body.
func DefaultTransform(body []byte) (Page, error) {
	var resp defaultResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return Page{
		Data:          resp.Data,
		NextPageToken: resp.NextPage,
	}, nil
}

// PathTransform returns a transform reading rows and the next page token at
// the given gjson paths. An empty nextPagePath means the response never
// advertises a following page.
func PathTransform(dataPath, nextPagePath string) TransformFunc {
	return func(body []byte) (Page, error) {
		if !gjson.ValidBytes(body) {
			return Page{}, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
		}

		var page Page

		data := body
		if dataPath != "" {
			res := gjson.GetBytes(body, dataPath)
			if !res.Exists() {
				return page, nil
			}
			data = []byte(res.Raw)
		}
		rows := gjson.ParseBytes(data)
		if !rows.IsArray() {
			return Page{}, fmt.Errorf("%w: %q is not an array", ErrMalformedResponse, dataPath)
		}
		for _, r := range rows.Array() {
			page.Data = append(page.Data, json.RawMessage(r.Raw))
		}

		if nextPagePath == "" {
			return page, nil
		}
		next := gjson.GetBytes(body, nextPagePath)
		switch next.Type {
		case gjson.Number:
			page.NextPageToken = IntPtr(int(next.Int()))
		case gjson.String:
			n, err := strconv.Atoi(next.Str)
			if err != nil {
				return Page{}, fmt.Errorf("%w: next page %q is not a number", ErrMalformedResponse, next.Str)
			}
			page.NextPageToken = IntPtr(n)
		}

		return page, nil
	}
}

// TransformFor returns the transform matching the given paths, falling back
// to DefaultTransform when both are empty.
func TransformFor(dataPath, nextPagePath string) TransformFunc {
	if dataPath == "" && nextPagePath == "" {
		return DefaultTransform
	}
	return PathTransform(dataPath, nextPagePath)
}
