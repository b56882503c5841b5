package event

import "github.com/invopop/jsonschema"

// Schema describes the payload accepted by "bgmsync event" and POST /sync.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	return reflector.Reflect([]*Episode{})
}
