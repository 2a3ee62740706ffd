package domain

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrGlobalIDInvalid = errors.New("domain: global id is invalid")

// GlobalID encodes a relay style opaque id ("<kind>:<id>" in base64).
func GlobalID(kind string, id ID) string {
	return base64.StdEncoding.EncodeToString([]byte(kind + ":" + id.String()))
}

// ParseGlobalID reverses GlobalID.
func ParseGlobalID(raw string) (string, ID, error) {
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return "", 0, ErrGlobalIDInvalid
	}
	kind, value, ok := strings.Cut(string(decoded), ":")
	if !ok || kind == "" {
		return "", 0, ErrGlobalIDInvalid
	}
	id, err := ParseID(value)
	if err != nil {
		return "", 0, ErrGlobalIDInvalid
	}
	return kind, id, nil
}
