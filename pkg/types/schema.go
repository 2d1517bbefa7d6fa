package types

import "encoding/json"

// Schema is the subset of a CloudFormation resource provider schema we read
type Schema struct {
	TypeName string             `json:"typeName,omitempty"`
	Handlers map[string]Handler `json:"-"`
}

// Handler describes a single CRUDL handler of a resource type
type Handler struct {
	Permissions []string `json:"permissions,omitempty"`
}

// UnmarshalJSON decodes a schema document on a best-effort basis. A missing
// "handlers" key, or handler entries that are not objects, are treated as
// absent rather than as decoding errors.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var raw struct {
		TypeName json.RawMessage `json:"typeName"`
		Handlers json.RawMessage `json:"handlers"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var typeName string
	if len(raw.TypeName) > 0 {
		_ = json.Unmarshal(raw.TypeName, &typeName)
	}

	var handlers map[string]json.RawMessage
	if len(raw.Handlers) > 0 {
		_ = json.Unmarshal(raw.Handlers, &handlers)
	}

	s.TypeName = typeName
	s.Handlers = make(map[string]Handler, len(handlers))
	for name, body := range handlers {
		var h struct {
			Permissions []json.RawMessage `json:"permissions"`
		}
		if err := json.Unmarshal(body, &h); err != nil {
			continue
		}

		handler := Handler{Permissions: make([]string, 0, len(h.Permissions))}
		for _, p := range h.Permissions {
			var perm string
			if err := json.Unmarshal(p, &perm); err == nil {
				handler.Permissions = append(handler.Permissions, perm)
			}
		}
		s.Handlers[name] = handler
	}

	return nil
}
