// Package docs expone la especificación OpenAPI de la API (Swagger 2.0).
// swagger.json se mantiene junto a las anotaciones godoc de los handlers.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var swaggerJSON string

// SwaggerInfo metadatos registrados en swag con el nombre por defecto.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "WhiteSlip API",
	Description:      "Backend POS: dispositivos, menú versionado, pedidos y reportes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  swaggerJSON,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// JSON devuelve el documento tal como se sirve en /docs.
func JSON() []byte { return []byte(SwaggerInfo.ReadDoc()) }

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
