// Package openapi derives form schemas from the request bodies of OpenAPI 3
// operations using kin-openapi.
package openapi
