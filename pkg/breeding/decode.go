package breeding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/attribute"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
)

var (
	timeType = reflect.TypeOf(time.Time{})
	rawType  = reflect.TypeOf(json.RawMessage(nil))
)

// Decode builds an input of the kind from a request body. Every key of
// body must name a settable field.
func Decode(kind Kind, body map[string]any) (Input, error) {
	in, err := NewInput(kind)
	if err != nil {
		return nil, err
	}
	if err := decode(kind.Name(), body, in, true, false); err != nil {
		return nil, err
	}
	return in, nil
}

// Patch builds an input from the current record and applies the fields
// named in body on top. Fields absent from body keep their current value,
// null clears them.
func Patch(kind Kind, current any, body map[string]any) (Input, error) {
	in, err := NewInput(kind)
	if err != nil {
		return nil, err
	}
	cur, err := ToMap(current)
	if err != nil {
		return nil, InvalidInputError(kind.Name(), err)
	}
	// derived columns of the record are not settable and are skipped
	if err := decode(kind.Name(), cur, in, false, true); err != nil {
		return nil, err
	}
	if err := decode(kind.Name(), body, in, true, false); err != nil {
		return nil, err
	}
	return in, nil
}

// DecodeFilter fills a filter from query parameters. Values are strings
// and converted to the field types.
func DecodeFilter(name string, params map[string]any, f any) error {
	return decode(name, params, f, true, true)
}

// ToMap converts a record to the map of its JSON fields.
func ToMap(rec any) (map[string]any, error) {
	bs, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return DecodeJSON(bs)
}

// DecodeJSON parses a JSON object keeping numbers as json.Number.
func DecodeJSON(bs []byte) (map[string]any, error) {
	var res map[string]any
	dec := json.NewDecoder(bytes.NewReader(bs))
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return nil, err
	}
	return res, nil
}

func decode(
	name string,
	data map[string]any,
	out any,
	strict, weak bool,
) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			dateHook, rawJSONHook,
		),
		ZeroFields:       true,
		WeaklyTypedInput: weak,
		Metadata:         &md,
		Result:           out,
	})
	if err != nil {
		return InvalidInputError(name, err)
	}
	if err := dec.Decode(data); err != nil {
		return InvalidInputError(name, err)
	}
	if strict && len(md.Unused) > 0 {
		slices.Sort(md.Unused)
		return UnknownFieldError(md.Unused[0], name)
	}
	return nil
}

func dateHook(from, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	d, ok := attribute.ParseDate(s)
	if !ok {
		return nil, fmt.Errorf("%q is not a date", s)
	}
	return d, nil
}

func rawJSONHook(from, to reflect.Type, data any) (any, error) {
	if to != rawType {
		return data, nil
	}
	if raw, ok := data.(json.RawMessage); ok {
		return raw, nil
	}
	bs, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(bs), nil
}

// ValidateOfflineID checks that an offline id, when present, is a UUID.
func ValidateOfflineID(id *string) error {
	if id == nil {
		return nil
	}
	if _, err := uuid.Parse(*id); err != nil {
		return OfflineIDError(*id)
	}
	return nil
}
