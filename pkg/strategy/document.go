package strategy

import (
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// NodeFromDocument rebuilds a tree node from its type-tagged record form.
func NodeFromDocument(doc map[string]any) (Node, error) {
	tag, err := types.DocumentTag(doc)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "if":
		return ifFromDocument(doc)
	case "action":
		name, err := types.DocumentString(doc, "action")
		if err != nil {
			return nil, err
		}

		action := types.Action(name)
		if err := action.Validate(); err != nil {
			return nil, err
		}

		return NewAction(action), nil
	case "sequence":
		return sequenceFromDocument(doc)
	default:
		return nil, errors.Newf(errors.ErrCodeUnknownTypeTag, "unknown node type %q", tag)
	}
}

func ifFromDocument(doc map[string]any) (Node, error) {
	condDoc, err := childRecord(doc, "condition")
	if err != nil {
		return nil, err
	}

	condition, err := ConditionFromDocument(condDoc)
	if err != nil {
		return nil, err
	}

	thenDoc, err := childRecord(doc, "then")
	if err != nil {
		return nil, err
	}

	then, err := NodeFromDocument(thenDoc)
	if err != nil {
		return nil, err
	}

	var els Node

	if _, ok := doc["else"]; ok {
		elsDoc, err := childRecord(doc, "else")
		if err != nil {
			return nil, err
		}

		els, err = NodeFromDocument(elsDoc)
		if err != nil {
			return nil, err
		}
	}

	return NewIf(condition, then, els), nil
}

func sequenceFromDocument(doc map[string]any) (Node, error) {
	mode, err := types.DocumentString(doc, "mode")
	if err != nil {
		return nil, err
	}

	items, err := childList(doc, "nodes")
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, len(items))

	for i, item := range items {
		sub, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Newf(errors.ErrCodeInvalidFieldType,
				"sequence member %d must be a record, got %T", i, item)
		}

		node, err := NodeFromDocument(sub)
		if err != nil {
			return nil, err
		}

		nodes[i] = node
	}

	seq := NewSequence(SequenceMode(mode), nodes...)

	if SequenceMode(mode) == SequenceModePercentage {
		threshold, err := types.DocumentInt(doc, "threshold")
		if err != nil {
			return nil, err
		}

		seq.threshold = threshold
	}

	return seq, nil
}

// ConditionFromDocument rebuilds a condition from its type-tagged record
// form.
func ConditionFromDocument(doc map[string]any) (Condition, error) {
	tag, err := types.DocumentTag(doc)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "and", "or":
		items, err := childList(doc, "conditions")
		if err != nil {
			return nil, err
		}

		conditions := make([]Condition, len(items))

		for i, item := range items {
			sub, ok := item.(map[string]any)
			if !ok {
				return nil, errors.Newf(errors.ErrCodeInvalidFieldType,
					"sub-condition %d must be a record, got %T", i, item)
			}

			c, err := ConditionFromDocument(sub)
			if err != nil {
				return nil, err
			}

			conditions[i] = c
		}

		if tag == "and" {
			return NewAnd(conditions...), nil
		}

		return NewOr(conditions...), nil
	case "not":
		sub, err := childRecord(doc, "condition")
		if err != nil {
			return nil, err
		}

		inner, err := ConditionFromDocument(sub)
		if err != nil {
			return nil, err
		}

		return NewNot(inner), nil
	default:
		return comparisonFromDocument(Op(tag), doc)
	}
}

func comparisonFromDocument(op Op, doc map[string]any) (Condition, error) {
	if !op.valid() {
		return nil, errors.Newf(errors.ErrCodeUnknownTypeTag, "unknown condition type %q", string(op))
	}

	indDoc, err := childRecord(doc, "indicator")
	if err != nil {
		return nil, err
	}

	ind, err := indicator.FromDocument(indDoc)
	if err != nil {
		return nil, err
	}

	_, hasValue := doc["value"]
	_, hasOther := doc["other"]

	switch {
	case hasValue && hasOther:
		return nil, errors.Newf(errors.ErrCodeAmbiguousComparand,
			"%s condition carries both a value and a second indicator", string(op))
	case hasValue:
		valueDoc, err := childRecord(doc, "value")
		if err != nil {
			return nil, err
		}

		value, err := types.OutputFromDocument(valueDoc)
		if err != nil {
			return nil, err
		}

		return NewComparison(op, ind, value), nil
	case hasOther:
		otherDoc, err := childRecord(doc, "other")
		if err != nil {
			return nil, err
		}

		other, err := indicator.FromDocument(otherDoc)
		if err != nil {
			return nil, err
		}

		return NewIndicatorComparison(op, ind, other), nil
	default:
		return nil, errors.Newf(errors.ErrCodeMissingComparand,
			"%s condition carries neither a value nor a second indicator", string(op))
	}
}

func childRecord(doc map[string]any, key string) (map[string]any, error) {
	raw, ok := doc[key]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeMissingField, "record is missing %q", key)
	}

	sub, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidFieldType, "%q must be a record, got %T", key, raw)
	}

	return sub, nil
}

func childList(doc map[string]any, key string) ([]any, error) {
	raw, ok := doc[key]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeMissingField, "record is missing %q", key)
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidFieldType, "%q must be a list, got %T", key, raw)
	}

	return items, nil
}
