package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quantity is an integer count in a request body. Admin forms submit it
// either as a JSON number or as a string such as "12"; both are accepted.
// Fractions, exponents and anything non-numeric are rejected.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		s = strings.TrimSpace(str)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("quantity must be an integer, got %s", b)
	}
	*q = Quantity(n)
	return nil
}

func (q Quantity) Int() int {
	return int(q)
}
