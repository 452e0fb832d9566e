package buff

import (
	"fmt"
	"strconv"

	"github.com/udisondev/unitsim/internal/model"
)

func attributeParam(params map[string]string) (model.AttributeKind, error) {
	name, ok := params["attribute"]
	if !ok {
		return model.AttributeUnknown, fmt.Errorf("missing param %q", "attribute")
	}
	return model.ParseAttributeKind(name)
}

// floatParam returns def when key is absent.
func floatParam(params map[string]string, key string, def float64) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("param %q: %w", key, err)
	}
	return v, nil
}

func boolParam(params map[string]string, key string, def bool) (bool, error) {
	raw, ok := params[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("param %q: %w", key, err)
	}
	return v, nil
}
