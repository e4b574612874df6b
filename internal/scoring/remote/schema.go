// internal/scoring/remote/schema.go
package remote

// responseSchema validates the external service's reply before it is trusted.
// A reply that parses as JSON but violates the schema is treated exactly like
// a transport failure.
const responseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["scores"],
  "properties": {
    "scores": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "score"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "score": {"type": "number", "minimum": 0, "maximum": 1},
          "factors": {
            "type": "object",
            "additionalProperties": {"type": "number"}
          }
        }
      }
    }
  }
}`
