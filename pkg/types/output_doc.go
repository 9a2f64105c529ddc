package types

import (
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// Document renders the output as a type-tagged record suitable for any of
// the supported serialization formats. Scalar carries "value", tuple carries
// "values", candle references carry only the tag.
func (o Output) Document() map[string]any {
	doc := map[string]any{"type": string(o.kind)}

	switch o.kind {
	case OutputKindScalar:
		doc["value"] = o.scalar
	case OutputKindTuple:
		vs := make([]any, len(o.tuple))
		for i, v := range o.tuple {
			vs[i] = v
		}

		doc["values"] = vs
	case OutputKindStatic:
		doc["value"] = o.static
	case OutputKindComposite:
		parts := make([]any, len(o.parts))
		for i, p := range o.parts {
			parts[i] = p.Document()
		}

		doc["parts"] = parts
	}

	return doc
}

// OutputFromDocument rebuilds an output from its type-tagged record form.
func OutputFromDocument(doc map[string]any) (Output, error) {
	tag, err := DocumentTag(doc)
	if err != nil {
		return Output{}, err
	}

	switch OutputKind(tag) {
	case OutputKindScalar:
		v, err := DocumentFloat(doc, "value")
		if err != nil {
			return Output{}, err
		}

		return Scalar(v), nil
	case OutputKindTuple:
		vs, err := DocumentFloats(doc, "values")
		if err != nil {
			return Output{}, err
		}

		return Tuple(vs...), nil
	case OutputKindOpen:
		return Open(), nil
	case OutputKindHigh:
		return High(), nil
	case OutputKindLow:
		return Low(), nil
	case OutputKindClose:
		return ClosePrice(), nil
	case OutputKindTypicalPrice:
		return TypicalPrice(), nil
	case OutputKindStatic:
		b, err := DocumentBool(doc, "value")
		if err != nil {
			return Output{}, err
		}

		return Static(b), nil
	case OutputKindComposite:
		raw, ok := doc["parts"]
		if !ok {
			return Output{}, errors.New(errors.ErrCodeMissingField, "composite output is missing parts")
		}

		items, ok := raw.([]any)
		if !ok {
			return Output{}, errors.Newf(errors.ErrCodeInvalidFieldType, "parts must be a list, got %T", raw)
		}

		parts := make([]Output, len(items))
		for i, item := range items {
			sub, ok := item.(map[string]any)
			if !ok {
				return Output{}, errors.Newf(errors.ErrCodeInvalidFieldType,
					"composite part %d must be a record, got %T", i, item)
			}

			part, err := OutputFromDocument(sub)
			if err != nil {
				return Output{}, err
			}

			parts[i] = part
		}

		return Composite(parts...), nil
	default:
		return Output{}, errors.Newf(errors.ErrCodeUnknownTypeTag, "unknown output type %q", tag)
	}
}

// DocumentTag extracts the "type" discriminator from a record.
func DocumentTag(doc map[string]any) (string, error) {
	raw, ok := doc["type"]
	if !ok {
		return "", errors.New(errors.ErrCodeMissingTypeTag, "record has no type tag")
	}

	tag, ok := raw.(string)
	if !ok {
		return "", errors.Newf(errors.ErrCodeInvalidFieldType, "type tag must be a string, got %T", raw)
	}

	return tag, nil
}

// DocumentFloat extracts a required numeric field from a record.
func DocumentFloat(doc map[string]any, key string) (float64, error) {
	raw, ok := doc[key]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeMissingField, "record is missing %q", key)
	}

	v, ok := AsFloat(raw)
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidFieldType, "%q must be a number, got %T", key, raw)
	}

	return v, nil
}

// DocumentFloats extracts a required list of numbers from a record.
func DocumentFloats(doc map[string]any, key string) ([]float64, error) {
	raw, ok := doc[key]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeMissingField, "record is missing %q", key)
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidFieldType, "%q must be a list, got %T", key, raw)
	}

	vs := make([]float64, len(items))
	for i, item := range items {
		v, ok := AsFloat(item)
		if !ok {
			return nil, errors.Newf(errors.ErrCodeInvalidFieldType, "%q[%d] must be a number, got %T", key, i, item)
		}

		vs[i] = v
	}

	return vs, nil
}

// DocumentInt extracts a required integer field from a record.
func DocumentInt(doc map[string]any, key string) (int, error) {
	v, err := DocumentFloat(doc, key)
	if err != nil {
		return 0, err
	}

	n := int(v)
	if float64(n) != v {
		return 0, errors.Newf(errors.ErrCodeInvalidFieldType, "%q must be an integer, got %v", key, v)
	}

	return n, nil
}

// DocumentBool extracts a required boolean field from a record.
func DocumentBool(doc map[string]any, key string) (bool, error) {
	raw, ok := doc[key]
	if !ok {
		return false, errors.Newf(errors.ErrCodeMissingField, "record is missing %q", key)
	}

	b, ok := raw.(bool)
	if !ok {
		return false, errors.Newf(errors.ErrCodeInvalidFieldType, "%q must be a boolean, got %T", key, raw)
	}

	return b, nil
}

// DocumentString extracts a required string field from a record.
func DocumentString(doc map[string]any, key string) (string, error) {
	raw, ok := doc[key]
	if !ok {
		return "", errors.Newf(errors.ErrCodeMissingField, "record is missing %q", key)
	}

	s, ok := raw.(string)
	if !ok {
		return "", errors.Newf(errors.ErrCodeInvalidFieldType, "%q must be a string, got %T", key, raw)
	}

	return s, nil
}

// AsFloat widens any numeric representation a decoder may produce into a
// float64. Different formats hand back different integer widths.
func AsFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
