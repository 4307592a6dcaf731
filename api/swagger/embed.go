// Package swagger embeds the OpenAPI document served next to the Swagger UI.
package swagger

import _ "embed"

// UserDirectory is the OpenAPI 2.0 document of the HTTP API.
//
//go:embed user.swagger.json
var UserDirectory []byte
