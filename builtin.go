package envguard

// Node environments accepted by BaseAPI.
const (
	Production  = "production"
	Development = "development"
)

// AWS holds the standard AWS variables.
var AWS = NewSchema("AWSEnvironmentVariables",
	Field{Name: "AWS_PROFILE", Type: TypeString, Optional: true},
)

// BaseAPI holds the standard API variables.
var BaseAPI = NewSchema("BaseAPIEnvironmentVariables",
	Enum("NODE_ENV", Production, Development),
	Number("PORT"),
)

// Defaults selects built-in schemas.
type Defaults struct {
	AWS     bool
	BaseAPI bool
}

// Resolve returns the enabled built-in schemas followed by schemas,
// without nils or duplicates.
func Resolve(d Defaults, schemas ...*Schema) []*Schema {
	var all []*Schema
	if d.AWS {
		all = append(all, AWS)
	}
	if d.BaseAPI {
		all = append(all, BaseAPI)
	}
	return unique(append(all, schemas...))
}
