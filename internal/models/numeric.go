package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"gopkg.in/yaml.v3"
)

// numberDoubleKey is the extended-JSON wrapper some imported documents carry
// instead of a plain double, e.g. {"$numberDouble": "1900"}.
const numberDoubleKey = "$numberDouble"

// Numeric is a metric value with two accepted wire representations: a plain
// number, or a document wrapping it under "$numberDouble". The wrapper key is
// checked first. A missing or unreadable value is not Valid and prints as
// "N/A".
type Numeric struct {
	Value float64
	Valid bool
}

// NewNumeric returns a present value.
func NewNumeric(v float64) Numeric {
	return Numeric{Value: v, Valid: true}
}

// String formats the value for display.
func (n Numeric) String() string {
	if !n.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// Positive reports whether the value is present and greater than zero.
func (n Numeric) Positive() bool {
	return n.Valid && n.Value > 0
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (n *Numeric) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*n = Numeric{}
	rv := bson.RawValue{Type: t, Value: data}

	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		return nil
	case bson.TypeEmbeddedDocument:
		doc, ok := rv.DocumentOK()
		if !ok {
			return fmt.Errorf("numeric: malformed embedded document")
		}
		wrapped := doc.Lookup(numberDoubleKey)
		if wrapped.Type == 0 {
			return nil
		}
		return n.UnmarshalBSONValue(wrapped.Type, wrapped.Value)
	case bson.TypeDouble:
		if v, ok := rv.DoubleOK(); ok {
			*n = NewNumeric(v)
			return nil
		}
	case bson.TypeInt32:
		if v, ok := rv.Int32OK(); ok {
			*n = NewNumeric(float64(v))
			return nil
		}
	case bson.TypeInt64:
		if v, ok := rv.Int64OK(); ok {
			*n = NewNumeric(float64(v))
			return nil
		}
	case bson.TypeDecimal128:
		if v, ok := rv.Decimal128OK(); ok {
			n.setString(v.String())
			return nil
		}
	case bson.TypeString:
		if v, ok := rv.StringValueOK(); ok {
			n.setString(v)
			return nil
		}
	default:
		slog.Debug("numeric: ignoring non-numeric value", "type", t.String())
		return nil
	}
	return fmt.Errorf("numeric: malformed %s value", t)
}

// MarshalBSONValue implements bson.ValueMarshaler. Values are always written
// as plain doubles.
func (n Numeric) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !n.Valid {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(n.Value)
}

// MarshalJSON implements json.Marshaler.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	*n = Numeric{}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	return n.set(raw)
}

// UnmarshalYAML implements yaml.Unmarshaler for fixture files.
func (n *Numeric) UnmarshalYAML(value *yaml.Node) error {
	*n = Numeric{}

	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return n.set(raw)
}

func (n *Numeric) set(raw any) error {
	switch v := raw.(type) {
	case nil:
		return nil
	case json.Number:
		n.setString(v.String())
	case float64:
		*n = NewNumeric(v)
	case int:
		*n = NewNumeric(float64(v))
	case int64:
		*n = NewNumeric(float64(v))
	case string:
		n.setString(v)
	case map[string]any:
		wrapped, ok := v[numberDoubleKey]
		if !ok {
			return nil
		}
		return n.set(wrapped)
	default:
		slog.Debug("numeric: ignoring non-numeric value", "type", fmt.Sprintf("%T", raw))
	}
	return nil
}

// setString leaves n invalid when s is not a number, e.g. "1,200" or "Low".
func (n *Numeric) setString(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		slog.Debug("numeric: ignoring non-numeric string", "value", s)
		return
	}
	*n = NewNumeric(f)
}
