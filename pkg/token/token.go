// Package token encodes and decodes the opaque bearer credential used by the
// mock API: base64 of a JSON object carrying the caller's numeric user id.
// There is no signature; the surrounding system is assumed to issue
// trustworthy tokens.
package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Unauthenticated is the sentinel user id returned when a credential cannot
// be decoded. Callers must branch on it explicitly; Decode never fails.
const Unauthenticated = -1

type claims struct {
	ID *int `json:"id"`
}

// Encode returns the bearer credential for the given user id, without the
// "Bearer " prefix.
func Encode(userID int) string {
	payload, _ := json.Marshal(claims{ID: &userID})
	return base64.StdEncoding.EncodeToString(payload)
}

// Decode extracts the user id from an Authorization header value of the form
// "Bearer <base64(JSON {id})>". It returns Unauthenticated on a missing
// header, wrong scheme, undecodable payload, or non-numeric id.
func Decode(authorization string) int {
	raw, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok {
		return Unauthenticated
	}

	payload, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return Unauthenticated
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil || c.ID == nil {
		return Unauthenticated
	}
	return *c.ID
}
