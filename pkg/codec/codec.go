// Package codec translates strategy and indicator documents through the
// supported structured encodings. Every format carries the same canonical
// shape: string-keyed records with a "type" discriminator, lists, numbers,
// booleans and strings. Decoders differ in the generic shapes they hand
// back, so decoding always passes through a normalization step.
package codec

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	pickle "github.com/kisielk/og-rek"
	"github.com/pelletier/go-toml/v2"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/strategy"
)

// Format names one supported encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatMsgpack Format = "msgpack"
	FormatCBOR    Format = "cbor"
	FormatPickle  Format = "pickle"
)

// Formats lists every supported encoding.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML, FormatMsgpack, FormatCBOR, FormatPickle}
}

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".msgpack", ".mp":
		return FormatMsgpack, nil
	case ".cbor":
		return FormatCBOR, nil
	case ".pickle", ".pkl":
		return FormatPickle, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "cannot infer format from %q", path)
	}
}

// Encode renders a canonical document in the given format.
func Encode(doc map[string]any, format Format) ([]byte, error) {
	var (
		out []byte
		err error
	)

	switch format {
	case FormatJSON:
		out, err = json.Marshal(doc)
	case FormatYAML:
		out, err = yaml.Marshal(doc)
	case FormatTOML:
		out, err = toml.Marshal(doc)
	case FormatMsgpack:
		out, err = msgpack.Marshal(doc)
	case FormatCBOR:
		out, err = cbor.Marshal(doc)
	case FormatPickle:
		var buf bytes.Buffer

		err = pickle.NewEncoder(&buf).Encode(doc)
		out = buf.Bytes()
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported format %q", format)
	}

	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeEncodeFailed, err, "cannot encode document as %s", format)
	}

	return out, nil
}

// Decode parses bytes in the given format back into a canonical document.
func Decode(data []byte, format Format) (map[string]any, error) {
	var (
		raw any
		err error
	)

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		var doc map[string]any

		err = toml.Unmarshal(data, &doc)
		raw = doc
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &raw)
	case FormatCBOR:
		err = cbor.Unmarshal(data, &raw)
	case FormatPickle:
		raw, err = pickle.NewDecoder(bytes.NewReader(data)).Decode()
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported format %q", format)
	}

	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDecodeFailed, err, "cannot decode %s document", format)
	}

	doc, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeDecodeFailed, "%s document is not a record", format)
	}

	return doc, nil
}

// EncodeStrategy renders a strategy in the given format.
func EncodeStrategy(s *strategy.Strategy, format Format) ([]byte, error) {
	return Encode(s.Document(), format)
}

// DecodeStrategy parses bytes in the given format into a validated
// strategy with fresh indicator state.
func DecodeStrategy(data []byte, format Format) (*strategy.Strategy, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}

	return strategy.FromDocument(doc)
}

// EncodeIndicator renders a single indicator in the given format.
func EncodeIndicator(ind indicator.Indicator, format Format) ([]byte, error) {
	return Encode(ind.Document(), format)
}

// DecodeIndicator parses bytes in the given format into a fresh indicator.
func DecodeIndicator(data []byte, format Format) (indicator.Indicator, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}

	return indicator.FromDocument(doc)
}
