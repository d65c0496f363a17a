package adapter

import (
	"bytes"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
)

// JSON loads .json files. Decoding goes through the token stream
// instead of a plain map so the source key order survives; numbers are
// kept as int64 when they have no fractional part, float64 otherwise.
type JSON struct{}

func (JSON) Parsable(path string) bool {
	return hasExt(path, ".json")
}

func (JSON) Load(path string) (Map, error) {
	if err := CheckFile(path); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	// an empty file is an empty schema, not a failure
	if len(bytes.TrimSpace(raw)) == 0 {
		return Map{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	m, ok := v.(Map)
	if !ok {
		return nil, errors.Newf("decoding %s: top-level JSON value must be an object", path)
	}

	return m, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	default:
		// string, bool or nil
		return t, nil

	case json.Number:
		return normalizeNumber(t), nil

	case json.Delim:
		switch t {
		case '{':
			var out Map

			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}

				key, ok := keyTok.(string)
				if !ok {
					return nil, errors.Newf("unexpected object key token %v", keyTok)
				}

				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}

				out = append(out, Pair{Key: key, Value: val})
			}

			// consume the closing brace
			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			if out == nil {
				out = Map{}
			}

			return out, nil

		case '[':
			out := []any{}

			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}

				out = append(out, val)
			}

			if _, err := dec.Token(); err != nil {
				return nil, err
			}

			return out, nil

		default:
			return nil, errors.Newf("unexpected delimiter %q", t.String())
		}
	}
}

// normalizeNumber maps JSON numbers onto the two numeric primitives.
func normalizeNumber(n json.Number) any {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return i
		}
	}

	f, err := n.Float64()
	if err != nil {
		return s
	}

	return f
}
