// Package openapi embeds the OpenAPI description of the REST API.
package openapi

import _ "embed"

// Spec is the OpenAPI 3 document served at /openapi.json.
//
//go:embed openapi.json
var Spec []byte
