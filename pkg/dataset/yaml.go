package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a dataset YAML file of the form
//
//	target:
//	  fuzzer: [cov_run_1, cov_run_2, ...]
//
// Document order of targets and fuzzers is preserved.
func LoadFile(path string) (Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset file %s: %w", path, err)
	}
	ds, err := Parse(b)
	if err != nil {
		return Dataset{}, fmt.Errorf("parse dataset file %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes dataset YAML. It walks yaml nodes directly because Go maps
// would lose the document order that report rendering depends on.
func Parse(b []byte) (Dataset, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return Dataset{}, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Dataset{}, fmt.Errorf("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Dataset{}, fmt.Errorf("line %d: expected mapping of targets", root.Line)
	}

	var ds Dataset
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		t, err := parseTarget(keyNode.Value, valNode)
		if err != nil {
			return Dataset{}, err
		}
		ds.Targets = append(ds.Targets, t)
	}
	return ds, nil
}

func parseTarget(name string, node *yaml.Node) (Target, error) {
	if node.Kind != yaml.MappingNode {
		return Target{}, fmt.Errorf("target %s (line %d): expected mapping of fuzzers", name, node.Line)
	}
	t := Target{Name: name}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var values []float64
		if err := valNode.Decode(&values); err != nil {
			return Target{}, fmt.Errorf("target %s, fuzzer %s (line %d): expected sequence of numbers: %w",
				name, keyNode.Value, valNode.Line, err)
		}
		t.Groups = append(t.Groups, Group{Fuzzer: keyNode.Value, Values: values})
	}
	return t, nil
}

// MarshalYAML renders the dataset back into the same target/fuzzer mapping,
// preserving order.
func (d Dataset) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, t := range d.Targets {
		tNode := &yaml.Node{Kind: yaml.MappingNode}
		for _, g := range t.Groups {
			var seq yaml.Node
			if err := seq.Encode(g.Values); err != nil {
				return nil, err
			}
			seq.Style = yaml.FlowStyle
			tNode.Content = append(tNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: g.Fuzzer},
				&seq,
			)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: t.Name},
			tNode,
		)
	}
	return root, nil
}
