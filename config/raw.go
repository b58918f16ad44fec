package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const ssmPrefix = "ssm:"

// Raw is an undecoded, kind-tagged config entry.
type Raw map[string]interface{}

func (r Raw) Kind() string {
	if k, ok := r["kind"].(string); ok {
		return k
	}
	return ""
}

// Decode fails on keys out does not declare.
func (r Raw) Decode(out interface{}) error {
	b, err := yaml.Marshal(map[string]interface{}(r))
	if err != nil {
		return errors.Wrap(err, "marshal raw config")
	}
	if err := yaml.UnmarshalStrict(b, out); err != nil {
		return errors.Wrapf(err, "decode %q config", r.Kind())
	}
	return nil
}

func (r Raw) with(key string, v interface{}) Raw {
	out := make(Raw, len(r)+1)
	for k, val := range r {
		out[k] = val
	}
	out[key] = v
	return out
}

// resolve swaps "ssm:<key>" strings, at any depth, for the parameter h returns.
func (r Raw) resolve(h Helper) (Raw, error) {
	v, err := resolveValue(r, h)
	if err != nil {
		return nil, err
	}
	return v.(Raw), nil
}

func resolveValue(v interface{}, h Helper) (interface{}, error) {
	switch val := v.(type) {
	case string:
		if !strings.HasPrefix(val, ssmPrefix) {
			return val, nil
		}
		key := strings.TrimPrefix(val, ssmPrefix)
		s, err := h.GetParameter(key)
		return s, errors.Wrapf(err, "parameter %s", key)
	case Raw:
		out := make(Raw, len(val))
		for k, item := range val {
			resolved, err := resolveValue(item, h)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case map[string]interface{}:
		resolved, err := resolveValue(Raw(val), h)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}(resolved.(Raw)), nil
	case map[interface{}]interface{}:
		out := make(map[interface{}]interface{}, len(val))
		for k, item := range val {
			resolved, err := resolveValue(item, h)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = resolved
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			resolved, err := resolveValue(item, h)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}
