package types

// Operation is a CRUDL handler name in a resource type schema
type Operation string

const (
	OperationCreate Operation = "create"
	OperationRead   Operation = "read"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
	OperationList   Operation = "list"
)

// AllOperations is the order used whenever every operation is requested
var AllOperations = []Operation{
	OperationCreate,
	OperationRead,
	OperationUpdate,
	OperationDelete,
	OperationList,
}

// IsValid reports whether o is one of AllOperations
func (o Operation) IsValid() bool {
	for _, op := range AllOperations {
		if op == o {
			return true
		}
	}
	return false
}

// OperationNames returns AllOperations as plain strings
func OperationNames() []string {
	names := make([]string, len(AllOperations))
	for i, op := range AllOperations {
		names[i] = string(op)
	}
	return names
}
