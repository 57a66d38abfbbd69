package repositories

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"blackpiston/internal/domain"
)

// Keys a PATCH body may carry but never applies.
var protectedKeys = map[string]bool{
	"id":        true,
	"createdAt": true,
	"updatedAt": true,
}

// buildPatch merges the JSON object in raw into a copy of existing using key
// presence: only keys present in the body change, everything else keeps its
// stored value. Unknown keys and mistyped values are validation errors.
func buildPatch[T any](existing T, raw []byte) (T, []string, error) {
	var zero T

	payload := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return zero, nil, domain.ValidationError{Field: "body", Msg: "must be a JSON object", Err: err}
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		if protectedKeys[k] {
			delete(payload, k)
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// deep copy so slices in the stored record are never written through
	base, err := json.Marshal(existing)
	if err != nil {
		return zero, nil, domain.InternalError{Msg: "encode record", Err: err}
	}
	var merged T
	if err := json.Unmarshal(base, &merged); err != nil {
		return zero, nil, domain.InternalError{Msg: "decode record", Err: err}
	}
	if len(keys) == 0 {
		return merged, keys, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return zero, nil, domain.ValidationError{Field: "body", Msg: "invalid JSON", Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&merged); err != nil {
		return zero, nil, domain.ValidationError{Field: fieldFromDecodeError(err), Msg: err.Error(), Err: err}
	}
	return merged, keys, nil
}

func fieldFromDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field
	}
	msg := err.Error()
	if i := strings.Index(msg, `unknown field "`); i >= 0 {
		rest := msg[i+len(`unknown field "`):]
		if j := strings.Index(rest, `"`); j >= 0 {
			return rest[:j]
		}
	}
	return "body"
}
