// Package bridge converts between PBJSON and the text formats people
// actually hand-edit, JSON and YAML, for the cmd/pbjson converter.
package bridge

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/scottkmaxwell/pbjson"
)

// FromJSON decodes JSON text into a PBJSON byte sequence.
func FromJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "bridge: decode JSON")
	}
	out, err := pbjson.Encode(v)
	if err != nil {
		return nil, errors.Wrap(err, "bridge: encode pbjson")
	}
	logrus.WithField("bytes", len(out)).Debug("bridge: converted JSON to pbjson")
	return out, nil
}

// ToJSON decodes a PBJSON byte sequence and renders it as JSON, indented
// when pretty is true.
func ToJSON(data []byte, pretty bool) ([]byte, error) {
	v, err := pbjson.Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "bridge: decode pbjson")
	}
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// FromYAML decodes YAML text into a PBJSON byte sequence.
func FromYAML(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "bridge: decode YAML")
	}
	out, err := pbjson.Encode(v)
	if err != nil {
		return nil, errors.Wrap(err, "bridge: encode pbjson")
	}
	logrus.WithField("bytes", len(out)).Debug("bridge: converted YAML to pbjson")
	return out, nil
}

// ToYAML decodes a PBJSON byte sequence and renders it as YAML.
func ToYAML(data []byte) ([]byte, error) {
	v, err := pbjson.Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "bridge: decode pbjson")
	}
	return yaml.Marshal(v)
}
