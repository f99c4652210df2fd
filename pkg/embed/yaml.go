package phi

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/0xJonas/Phi/internal/evaluator"
)

// LoadYAML declares each key of a YAML mapping as a global. Mappings keep
// their document order as named members and sequences become unnamed members.
func (in *Interpreter) LoadYAML(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "parsing globals")
	}
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return errors.Errorf("globals must be a YAML mapping, line %d", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value, err := in.yamlToValue(root.Content[i+1])
		if err != nil {
			return errors.Wrapf(err, "global %s", key)
		}
		if err := in.setObject(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) yamlToValue(node *yaml.Node) (evaluator.Object, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return in.yamlToValue(node.Alias)
	case yaml.SequenceNode:
		result := evaluator.NewCollection()
		for _, item := range node.Content {
			value, err := in.yamlToValue(item)
			if err != nil {
				return nil, err
			}
			if err := result.AppendUnnamed(value); err != nil {
				return nil, errors.WithStack(err)
			}
		}
		return result, nil
	case yaml.MappingNode:
		result := evaluator.NewCollection()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			value, err := in.yamlToValue(node.Content[i+1])
			if err != nil {
				return nil, errors.Wrapf(err, "member %s", key)
			}
			if err := result.CreateNamed(key); err != nil {
				return nil, errors.Wrapf(err, "line %d", node.Content[i].Line)
			}
			if err := result.SetNamed(key, value); err != nil {
				return nil, errors.WithStack(err)
			}
		}
		return result, nil
	case yaml.ScalarNode:
		if node.Tag == "!!timestamp" {
			return &evaluator.String{Value: node.Value}, nil
		}
		var v interface{}
		if err := node.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, "line %d", node.Line)
		}
		return in.marshaller.ToValue(v)
	}
	return nil, errors.Errorf("unsupported YAML node at line %d", node.Line)
}
