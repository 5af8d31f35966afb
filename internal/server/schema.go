package server

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// inputSchema reflects the JSON schema advertised for a tool's arguments.
func inputSchema[T any]() json.RawMessage {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	schema.Version = ""
	schema.ID = ""

	data, err := json.Marshal(schema)
	if err != nil {
		// reflected schemas of plain structs always marshal
		panic(err)
	}
	return data
}
