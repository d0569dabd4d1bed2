package admin

import (
	"encoding/json"
	"fmt"

	webfront "github.com/novacoders/webfront"
)

// decodeList pulls one page of records out of a normalized list response.
// Accepted shapes: a bare array, {data: [...], pagination: {...}}, or the
// records under a resource-named key.
func decodeList[T any](res webfront.Result, altKey string) ([]T, Pagination, error) {
	var items []T
	if err := json.Unmarshal(res.Data, &items); err == nil {
		return items, Pagination{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(res.Data, &fields); err != nil {
		return nil, Pagination{}, err
	}

	raw, ok := fields["data"]
	if !ok {
		raw, ok = fields[altKey]
	}
	if !ok {
		return nil, Pagination{}, fmt.Errorf("list payload missing %q field", altKey)
	}

	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, Pagination{}, err
	}

	var pagination Pagination
	if rawPage, exists := fields["pagination"]; exists {
		if err := json.Unmarshal(rawPage, &pagination); err != nil {
			pagination = Pagination{}
		}
	}

	return items, pagination, nil
}
