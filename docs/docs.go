// Package docs registra la especificación OpenAPI que sirve /swagger.
// Se mantiene a mano junto con las anotaciones de los handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/adoptions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Listar solicitudes (admin)",
                "parameters": [
                    {"type": "string", "description": "PENDING | APPROVED | COMPLETED | REJECTED | CANCELLED", "name": "status", "in": "query"},
                    {"type": "string", "description": "recent = más recientes primero", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/adoptions.adoptionResponse"}}},
                    "400": {"description": "status inválido", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Crea una solicitud PENDING para el usuario autenticado y reserva el gato.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Enviar solicitud de adopción",
                "parameters": [
                    {"description": "Gato y notas", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/adoptions.submitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/adoptions.adoptionResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "404": {"description": "user / cat not found", "schema": {"type": "string"}},
                    "409": {"description": "cat unavailable", "schema": {"type": "string"}}
                }
            }
        },
        "/adoptions/{adoptionID}/approve": {
            "put": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Aprobar solicitud (admin)",
                "parameters": [
                    {"type": "string", "description": "Adoption ID", "name": "adoptionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adoptions.adoptionResponse"}},
                    "404": {"description": "adoption not found", "schema": {"type": "string"}},
                    "409": {"description": "invalid transition", "schema": {"type": "string"}}
                }
            }
        },
        "/adoptions/{adoptionID}/complete": {
            "put": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Completar adopción (admin)",
                "parameters": [
                    {"type": "string", "description": "Adoption ID", "name": "adoptionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adoptions.adoptionResponse"}},
                    "404": {"description": "adoption not found", "schema": {"type": "string"}},
                    "409": {"description": "invalid transition", "schema": {"type": "string"}}
                }
            }
        },
        "/adoptions/{adoptionID}/reject": {
            "put": {
                "description": "El motivo es obligatorio y queda en admin_notes. El gato vuelve a AVAILABLE.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Rechazar solicitud (admin)",
                "parameters": [
                    {"type": "string", "description": "Adoption ID", "name": "adoptionID", "in": "path", "required": true},
                    {"description": "Motivo", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/adoptions.rejectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adoptions.adoptionResponse"}},
                    "400": {"description": "reason required", "schema": {"type": "string"}},
                    "404": {"description": "adoption not found", "schema": {"type": "string"}},
                    "409": {"description": "invalid transition", "schema": {"type": "string"}}
                }
            }
        },
        "/api-tokens": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["api-tokens"],
                "summary": "Generar API token (admin)",
                "parameters": [
                    {"description": "Organización y vigencia", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/apitokens.generateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/apitokens.tokenResponse"}},
                    "400": {"description": "organization required", "schema": {"type": "string"}}
                }
            }
        },
        "/breeds": {
            "get": {
                "produces": ["application/json"],
                "tags": ["breeds"],
                "summary": "Listar razas",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/breeds.breedResponse"}}}
                }
            }
        },
        "/breeds/search": {
            "get": {
                "description": "Coincidencia parcial sin distinguir mayúsculas; si vienen ambos filtros deben cumplirse los dos.",
                "produces": ["application/json"],
                "tags": ["breeds"],
                "summary": "Buscar razas por nombre u origen",
                "parameters": [
                    {"type": "string", "description": "Nombre (parcial)", "name": "name", "in": "query"},
                    {"type": "string", "description": "Origen (parcial)", "name": "origin", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/breeds.breedResponse"}}}
                }
            }
        },
        "/cats": {
            "get": {
                "description": "Lista todos los gatos, opcionalmente filtrados por status (AVAILABLE, PENDING, ADOPTED).",
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Listar gatos",
                "parameters": [
                    {"type": "string", "description": "AVAILABLE | PENDING | ADOPTED", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.catResponse"}}},
                    "400": {"description": "status inválido", "schema": {"type": "string"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Registrar gato (admin)",
                "parameters": [
                    {"description": "Datos del gato", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cats.createCatRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/cats.catResponse"}},
                    "400": {"description": "invalid json / reglas de negocio", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}}
                }
            }
        },
        "/cats/area": {
            "get": {
                "description": "Caja lat/lon aproximada de radius km (default 10).",
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Gatos disponibles cerca de un punto",
                "parameters": [
                    {"type": "number", "description": "Latitud", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitud", "name": "lon", "in": "query", "required": true},
                    {"type": "number", "description": "Radio en km", "name": "radius", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.catResponse"}}},
                    "400": {"description": "lat/lon/radius inválidos", "schema": {"type": "string"}}
                }
            }
        },
        "/cats/breed/{breedID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cats"],
                "summary": "Gatos de una raza",
                "parameters": [
                    {"type": "string", "description": "Breed ID", "name": "breedID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/cats.catResponse"}}}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Estadísticas del panel (admin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dashboard.statsResponse"}},
                    "403": {"description": "forbidden", "schema": {"type": "string"}}
                }
            }
        },
        "/health-data/anonymous-adoptions": {
            "get": {
                "description": "Requiere X-API-Token válido. No expone identidad ni dirección exacta.",
                "produces": ["application/json"],
                "tags": ["health-data"],
                "summary": "Adopciones completadas anonimizadas",
                "parameters": [
                    {"type": "string", "description": "API token", "name": "X-API-Token", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/adoptions.anonymizedResponse"}}},
                    "401": {"description": "invalid api token", "schema": {"type": "string"}}
                }
            }
        },
        "/users": {
            "post": {
                "description": "El ID, rol y tenant salen del token; el body trae los datos de contacto.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Registrar perfil del usuario autenticado",
                "parameters": [
                    {"description": "Perfil", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/users.userResponse"}},
                    "400": {"description": "invalid json / email inválido", "schema": {"type": "string"}},
                    "401": {"description": "unauthorized", "schema": {"type": "string"}},
                    "409": {"description": "user already exists", "schema": {"type": "string"}}
                }
            }
        },
        "/users/{userID}/adoptions/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["adoptions"],
                "summary": "Estadísticas de adopción de un usuario",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "userID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/adoptions.userStatsResponse"}},
                    "404": {"description": "user not found", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "adoptions.adoptionResponse": {
            "type": "object",
            "properties": {
                "admin_notes": {"type": "string"},
                "applicant_notes": {"type": "string"},
                "approved_at": {"type": "string"},
                "cat_id": {"type": "string"},
                "completed_at": {"type": "string"},
                "id": {"type": "string"},
                "processed_by": {"type": "string"},
                "status": {"type": "string"},
                "submitted_at": {"type": "string"},
                "tenant_id": {"type": "string"},
                "user_id": {"type": "string"}
            }
        },
        "adoptions.anonymizedResponse": {
            "type": "object",
            "properties": {
                "adoption_date": {"type": "string"},
                "cat_age": {"type": "integer"},
                "cat_breed": {"type": "string"},
                "location_region": {"type": "string"},
                "status": {"type": "string"},
                "tenant_id": {"type": "string"}
            }
        },
        "adoptions.rejectRequest": {
            "type": "object",
            "properties": {
                "reason": {"type": "string"}
            }
        },
        "adoptions.submitRequest": {
            "type": "object",
            "properties": {
                "cat_id": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "adoptions.userStatsResponse": {
            "type": "object",
            "properties": {
                "completed_adoptions": {"type": "integer"},
                "pending_applications": {"type": "integer"},
                "total_applications": {"type": "integer"},
                "user_id": {"type": "string"}
            }
        },
        "apitokens.generateRequest": {
            "type": "object",
            "properties": {
                "organization": {"type": "string"},
                "ttl_hours": {"type": "integer"}
            }
        },
        "apitokens.tokenResponse": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"},
                "created_at": {"type": "string"},
                "expires_at": {"type": "string"},
                "id": {"type": "string"},
                "organization": {"type": "string"},
                "token": {"type": "string"}
            }
        },
        "breeds.breedResponse": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "id": {"type": "string"},
                "image_url": {"type": "string"},
                "name": {"type": "string"},
                "origin": {"type": "string"},
                "temperament": {"type": "string"},
                "wikipedia_url": {"type": "string"}
            }
        },
        "cats.catResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "age": {"type": "integer"},
                "breed_id": {"type": "string"},
                "created_at": {"type": "string"},
                "description": {"type": "string"},
                "gender": {"type": "string"},
                "id": {"type": "string"},
                "image_url": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "name": {"type": "string"},
                "status": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "cats.createCatRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "age": {"type": "integer"},
                "breed_id": {"type": "string"},
                "description": {"type": "string"},
                "gender": {"type": "string"},
                "image_url": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "name": {"type": "string"}
            }
        },
        "dashboard.statsResponse": {
            "type": "object",
            "properties": {
                "admin_users": {"type": "integer"},
                "available_cats": {"type": "integer"},
                "adopted_cats": {"type": "integer"},
                "completed_adoptions": {"type": "integer"},
                "pending_adoptions": {"type": "integer"},
                "total_adoptions": {"type": "integer"},
                "total_cats": {"type": "integer"},
                "total_users": {"type": "integer"}
            }
        },
        "users.registerRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "postal_code": {"type": "string"},
                "street_address": {"type": "string"}
            }
        },
        "users.userResponse": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "enabled": {"type": "boolean"},
                "first_name": {"type": "string"},
                "id": {"type": "string"},
                "last_name": {"type": "string"},
                "postal_code": {"type": "string"},
                "role": {"type": "string"},
                "street_address": {"type": "string"},
                "tenant_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cat Rescue API",
	Description:      "Adopciones de gatos rescatados: catálogo, solicitudes y reportes anonimizados.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
