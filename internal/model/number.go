package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Number is a numeric document field that tolerates loosely typed input.
// Numbers and numeric strings decode to their value; anything else
// (null, booleans, free text, nested values) decodes to 0.
type Number float64

func (n Number) Float64() float64 {
	return float64(n)
}

// ParseNumber coerces a string the way the console's forms store it.
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Number(f)
}

func (n *Number) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		*n = finite(rv.Double())
	case bsontype.Int32:
		*n = Number(rv.Int32())
	case bsontype.Int64:
		*n = Number(rv.Int64())
	case bsontype.Decimal128:
		*n = ParseNumber(rv.Decimal128().String())
	case bsontype.String:
		*n = ParseNumber(rv.StringValue())
	default:
		*n = 0
	}
	return nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*n = 0
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = ParseNumber(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*n = finite(f)
	default:
		*n = 0
	}
	return nil
}
