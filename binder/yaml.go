package binder

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// BindYAML decodes data as a YAML document and binds the resulting tree onto
// dst. The document is decoded into its generic tree form first, so nested
// mappings arrive as map[string]any and sequences as []any before conversion;
// an empty document binds nothing and leaves dst untouched.
func BindYAML(data []byte, dst any, opts ...Option) error {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return Bind(tree, dst, opts...)
}
