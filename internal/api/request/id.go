// Package request holds small binding helpers shared by the admin handlers.
package request

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

// ID binds an identifier sent either as a JSON number or as a numeric
// string, which is what the dashboard's data-id attributes produce.
// Anything else decodes to 0, which matches no record.
type ID int

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			n = 0
		}
		*id = ID(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*id = ID(int(f))
	return nil
}

func (id ID) Int() int { return int(id) }

// ParamID reads a positive integer path parameter.
func ParamID(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
