package openapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MarshalJSON serializes the spec to indented JSON bytes. It fails when the
// document references components it does not define.
func MarshalJSON(spec *Spec) ([]byte, error) {
	if missing := spec.Unresolved(); len(missing) > 0 {
		return nil, fmt.Errorf("openapi: unresolved refs: %s", strings.Join(missing, ", "))
	}
	return json.MarshalIndent(spec, "", "  ")
}
