package sections

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dvloznov/polarix/internal/domain"
)

// Totals is the subcategory -> total object of an aggregation request. It
// decodes from a JSON object and keeps the keys in document order, which a
// Go map would lose. Values may be JSON numbers or numeric strings.
type Totals []domain.SubcategoryTotal

func (t *Totals) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("data must be an object")
	}

	var out Totals
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("subcategory name is required")
		}

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		total, err := parseTotal(raw)
		if err != nil {
			return fmt.Errorf("total for %q: %w", key, err)
		}
		out = append(out, domain.SubcategoryTotal{Subcategory: key, Total: total})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = out
	return nil
}

// parseTotal accepts a finite JSON number or numeric string.
func parseTotal(v interface{}) (float64, error) {
	var f float64
	switch x := v.(type) {
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a number: %s", x)
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", x)
		}
		f = n
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", v)
	}
	return f, nil
}
