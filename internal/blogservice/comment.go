package blogservice

import (
	"encoding/json"
	"maps"
)

var commentKeys = []string{"id", "author", "text", "rate", "createdAt"}

type commentAlias Comment

func (c Comment) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(commentAlias(c))
	if err != nil || len(c.Extra) == 0 {
		return data, err
	}

	return mergeExtra(data, c.Extra)
}

func (c *Comment) UnmarshalJSON(data []byte) error {
	var alias commentAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	extra, err := splitExtra(data)
	if err != nil {
		return err
	}

	*c = Comment(alias)
	c.Extra = extra
	return nil
}

type createCommentAlias CreateCommentRequest

// UnmarshalJSON accepts any object. Fields other than author, text and rate
// are kept in Extra; a client supplied id or createdAt is dropped.
func (req *CreateCommentRequest) UnmarshalJSON(data []byte) error {
	var alias createCommentAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	extra, err := splitExtra(data)
	if err != nil {
		return err
	}

	*req = CreateCommentRequest(alias)
	req.Extra = extra
	return nil
}

func splitExtra(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	for _, key := range commentKeys {
		delete(fields, key)
	}

	if len(fields) == 0 {
		return nil, nil
	}
	return fields, nil
}

func mergeExtra(data []byte, extra map[string]json.RawMessage) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	merged := maps.Clone(extra)
	maps.Copy(merged, fields)

	return json.Marshal(merged)
}
