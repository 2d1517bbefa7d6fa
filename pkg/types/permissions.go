package types

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// OperationPermissions holds the IAM actions a single handler requires
type OperationPermissions struct {
	Operation   Operation
	Permissions []string
}

// PermissionSet is an ordered list of per-operation permissions. Operations
// without a handler in the schema are not present.
type PermissionSet []OperationPermissions

// Get returns the permissions recorded for op
func (s PermissionSet) Get(op Operation) ([]string, bool) {
	for _, e := range s {
		if e.Operation == op {
			return e.Permissions, true
		}
	}
	return nil, false
}

// Operations returns the operations in the set, in order
func (s PermissionSet) Operations() []Operation {
	ops := make([]Operation, len(s))
	for i, e := range s {
		ops[i] = e.Operation
	}
	return ops
}

// MarshalJSON encodes the set as an object keyed by operation, keeping order
func (s PermissionSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(e.Operation))
		if err != nil {
			return nil, err
		}
		perms := e.Permissions
		if perms == nil {
			perms = []string{}
		}
		val, err := json.Marshal(perms)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the set as a mapping keyed by operation, keeping order
func (s PermissionSet) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		if len(e.Permissions) == 0 {
			seq.Style = yaml.FlowStyle
		}
		for _, p := range e.Permissions {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: p})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: string(e.Operation)},
			seq,
		)
	}
	return node, nil
}
