package infographic

import (
	"errors"
	"fmt"

	"slidegen/internal/util/jsonutil"
)

// ErrMalformedReply is returned when a model reply cannot be decoded as Data.
var ErrMalformedReply = errors.New("infographic: malformed reply")

// ParseData decodes a model reply. Surrounding prose and code fences are
// dropped and double-escaped unicode is tolerated. A reply whose items is not
// an array decodes with nil Items, which Validate rejects.
func ParseData(raw string) (Data, error) {
	obj, err := jsonutil.ExtractObject(raw)
	if err != nil {
		return Data{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	var d Data
	if err := jsonutil.UnmarshalFlex([]byte(obj), &d); err != nil {
		return Data{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return d, nil
}
