// Package docs holds the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/healthz": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "ok",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/readyz": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "ready",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "503": {
                        "description": "inventory unavailable",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/api/v1/sites": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sites"
                ],
                "summary": "List sites",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.SitesResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/sites/{site}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sites"
                ],
                "summary": "Get site",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Site key",
                        "name": "site",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.SiteResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/sites/{site}/devices": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "devices"
                ],
                "summary": "List devices of a site",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Site key",
                        "name": "site",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "VLAN id",
                        "name": "vlan",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Device type",
                        "name": "type",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.DevicesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "devices"
                ],
                "summary": "Add device",
                "description": "Additional fields such as rack go inside \"extra\"; unknown top-level keys are rejected with 400.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Site key",
                        "name": "site",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Device payload",
                        "name": "device",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.CreateDeviceRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/http.DeviceResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/sites/{site}/devices/{name}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "devices"
                ],
                "summary": "Get device",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Site key",
                        "name": "site",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Device name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.DeviceResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "devices"
                ],
                "summary": "Update device",
                "description": "Only the fields present in the payload change; extra keys are merged.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Site key",
                        "name": "site",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Device name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to change",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/http.UpdateDeviceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.DeviceResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "devices"
                ],
                "summary": "Delete device",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Site key",
                        "name": "site",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Device name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/sites/{site}/vlans/{vlan}/free-ips": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "vlans"
                ],
                "summary": "Free addresses in a VLAN",
                "description": "Host addresses not used by a device, the gateway or the DHCP pool.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Site key",
                        "name": "site",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "VLAN id",
                        "name": "vlan",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.FreeIPsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/devices": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "devices"
                ],
                "summary": "List devices",
                "description": "Devices of every site, optionally filtered.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Site key",
                        "name": "site",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "integer",
                        "description": "VLAN id",
                        "name": "vlan",
                        "in": "query",
                        "required": false
                    },
                    {
                        "type": "string",
                        "description": "Device type",
                        "name": "type",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.DevicesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/statistics": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "devices"
                ],
                "summary": "Device statistics",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Site key; all sites when empty",
                        "name": "site",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.StatisticsResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/export/csv": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "devices"
                ],
                "summary": "Export devices as CSV",
                "description": "Writes devices_<site|all>_<timestamp>.csv into the export directory.",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Site key; all sites when empty",
                        "name": "site",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/http.ExportResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/v1/plan": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "planner"
                ],
                "summary": "Plan a VLAN",
                "description": "Addressing for a known VLAN at HQ or Branch. With log=true the plan is appended to the plan log.",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "VLAN id (10, 20, 30, 40 or 50)",
                        "name": "vlan",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "HQ or Branch",
                        "name": "site",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "boolean",
                        "description": "Append to the plan log",
                        "name": "log",
                        "in": "query",
                        "required": false
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/planner.AddressSummary"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/http.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "device not found"
                }
            }
        },
        "http.SitesResponse": {
            "type": "object",
            "properties": {
                "sites": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "hq",
                        "branch"
                    ]
                }
            }
        },
        "http.DHCPPoolResponse": {
            "type": "object",
            "properties": {
                "start": {
                    "type": "string",
                    "example": "10.10.50.50"
                },
                "end": {
                    "type": "string",
                    "example": "10.10.50.150"
                }
            }
        },
        "http.VlanResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer",
                    "example": 50
                },
                "name": {
                    "type": "string",
                    "example": "Clients"
                },
                "subnet": {
                    "type": "string",
                    "example": "10.10.50.0/24"
                },
                "gateway": {
                    "type": "string",
                    "example": "10.10.50.1"
                },
                "dhcp_pool": {
                    "$ref": "#/definitions/http.DHCPPoolResponse"
                }
            }
        },
        "http.DeviceResponse": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string",
                    "example": "srv-01"
                },
                "type": {
                    "type": "string",
                    "example": "server"
                },
                "vlan": {
                    "type": "integer",
                    "example": 20
                },
                "ip": {
                    "type": "string",
                    "example": "10.10.20.10"
                },
                "port": {
                    "type": "string",
                    "example": "Gi1/0/1"
                },
                "switch": {
                    "type": "string",
                    "example": "sw-hq-01"
                },
                "status": {
                    "type": "string",
                    "example": "active"
                },
                "role": {
                    "type": "string",
                    "example": "web"
                },
                "description": {
                    "type": "string",
                    "example": "Intranet web server"
                },
                "extra": {
                    "type": "object",
                    "additionalProperties": true
                },
                "site": {
                    "type": "string",
                    "example": "hq"
                }
            }
        },
        "http.DevicesResponse": {
            "type": "object",
            "properties": {
                "devices": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/http.DeviceResponse"
                    }
                },
                "count": {
                    "type": "integer",
                    "example": 1
                }
            }
        },
        "http.SiteResponse": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string",
                    "example": "hq"
                },
                "vlans": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/http.VlanResponse"
                    }
                },
                "devices": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/http.DeviceResponse"
                    }
                }
            }
        },
        "http.CreateDeviceRequest": {
            "description": "Fields beyond the named ones go in extra; unknown top-level keys are rejected.",
            "type": "object",
            "required": [
                "name",
                "type",
                "vlan",
                "ip",
                "port",
                "switch",
                "status"
            ],
            "properties": {
                "name": {
                    "type": "string",
                    "example": "srv-01"
                },
                "type": {
                    "type": "string",
                    "example": "server"
                },
                "vlan": {
                    "type": "integer",
                    "example": 20
                },
                "ip": {
                    "type": "string",
                    "example": "10.10.20.10"
                },
                "port": {
                    "type": "string",
                    "example": "Gi1/0/1"
                },
                "switch": {
                    "type": "string",
                    "example": "sw-hq-01"
                },
                "status": {
                    "type": "string",
                    "example": "active"
                },
                "role": {
                    "type": "string",
                    "example": "web"
                },
                "description": {
                    "type": "string",
                    "example": "Intranet web server"
                },
                "extra": {
                    "description": "Additional inventory fields such as rack or asset tag. Keys may not repeat a named field.",
                    "type": "object",
                    "additionalProperties": true
                }
            }
        },
        "http.UpdateDeviceRequest": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string",
                    "example": "srv-01"
                },
                "type": {
                    "type": "string",
                    "example": "server"
                },
                "vlan": {
                    "type": "integer",
                    "example": 20
                },
                "ip": {
                    "type": "string",
                    "example": "10.10.20.10"
                },
                "port": {
                    "type": "string",
                    "example": "Gi1/0/1"
                },
                "switch": {
                    "type": "string",
                    "example": "sw-hq-01"
                },
                "status": {
                    "type": "string",
                    "example": "active"
                },
                "role": {
                    "type": "string",
                    "example": "web"
                },
                "description": {
                    "type": "string",
                    "example": "Intranet web server"
                },
                "extra": {
                    "type": "object",
                    "additionalProperties": true
                }
            }
        },
        "http.StatisticsResponse": {
            "type": "object",
            "properties": {
                "site": {
                    "type": "string",
                    "example": "hq"
                },
                "total_devices": {
                    "type": "integer",
                    "example": 12
                },
                "by_type": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "by_vlan": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "by_status": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "dhcp_devices": {
                    "type": "integer",
                    "example": 4
                },
                "static_devices": {
                    "type": "integer",
                    "example": 8
                }
            }
        },
        "http.FreeIPsResponse": {
            "type": "object",
            "properties": {
                "site": {
                    "type": "string",
                    "example": "hq"
                },
                "vlan": {
                    "type": "integer",
                    "example": 20
                },
                "vlan_info": {
                    "$ref": "#/definitions/http.VlanResponse"
                },
                "free_ips": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "count": {
                    "type": "integer",
                    "example": 252
                }
            }
        },
        "http.ExportResponse": {
            "type": "object",
            "properties": {
                "filename": {
                    "type": "string",
                    "example": "devices_hq_20251103_140509.csv"
                },
                "rows": {
                    "type": "integer",
                    "example": 12
                }
            }
        },
        "planner.AddressSummary": {
            "type": "object",
            "properties": {
                "vlan_id": {
                    "type": "integer",
                    "example": 50
                },
                "vlan_name": {
                    "type": "string",
                    "example": "Clients"
                },
                "site": {
                    "type": "string",
                    "example": "HQ"
                },
                "subnet": {
                    "type": "string",
                    "example": "10.10.50.0"
                },
                "subnet_mask": {
                    "type": "string",
                    "example": "255.255.255.0"
                },
                "cidr": {
                    "type": "string",
                    "example": "10.10.50.0/24"
                },
                "gateway": {
                    "type": "string",
                    "example": "10.10.50.1"
                },
                "first_usable": {
                    "type": "string",
                    "example": "10.10.50.2"
                },
                "last_usable": {
                    "type": "string",
                    "example": "10.10.50.254"
                },
                "broadcast": {
                    "type": "string",
                    "example": "10.10.50.255"
                },
                "dhcp_start": {
                    "type": "string",
                    "example": "10.10.50.50"
                },
                "dhcp_end": {
                    "type": "string",
                    "example": "10.10.50.150"
                },
                "usable_ips": {
                    "type": "integer",
                    "example": 254
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4040",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Site IPAM API",
	Description:      "Device inventory and VLAN address planning for HQ and branch sites.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
