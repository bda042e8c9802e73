package thing

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/go-viper/mapstructure/v2"

	"github.com/c360/semld/errors"
)

var validate = validator.New()

// Decode fills out (a pointer to a struct) from a *Node or a plain
// map[string]any. Keys starting with '@' are ignored, single values are
// widened to slices where the target field is a slice and RFC 3339 strings
// become time.Time. The result is then checked against its `validate` tags.
func Decode(src any, out any) error {
	var input map[string]any
	switch s := src.(type) {
	case *Node:
		if s == nil {
			return errors.WrapInvalid(errors.ErrInvalidData, "thing", "Decode", "nil node")
		}
		input = s.Map()
	case map[string]any:
		input = s
	default:
		return errors.WrapInvalid(fmt.Errorf("%w: cannot decode %T", errors.ErrUnsupported, src),
			"thing", "Decode", "source check")
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return errors.WrapInvalid(errors.Join(errors.ErrValidation, err), "thing", "Decode", "decoder setup")
	}
	if err := dec.Decode(stripKeywords(input)); err != nil {
		return errors.WrapInvalid(errors.Join(errors.ErrValidation, err), "thing", "Decode", "field decoding")
	}
	if err := validate.Struct(out); err != nil {
		return errors.WrapInvalid(errors.Join(errors.ErrValidation, err), "thing", "Decode", "validation")
	}
	return nil
}

func stripKeywords(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, item := range tv {
			if strings.HasPrefix(k, "@") {
				continue
			}
			out[k] = stripKeywords(item)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = stripKeywords(item)
		}
		return out
	default:
		return v
	}
}
