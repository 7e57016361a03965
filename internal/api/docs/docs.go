// Package docs holds the swagger document for the rate chart API, kept in sync with the
// handler annotations in internal/api.
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
        "/currencies": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "rates"
                ],
                "summary": "List supported currencies",
                "responses": {
                    "200": {
                        "description": "Supported codes in alphabetical order",
                        "schema": {
                            "$ref": "#/definitions/api.CurrenciesResponse"
                        }
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Always returns 200 OK if the service is running. Used for liveness probes.",
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Health check (liveness)",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    }
                }
            }
        },
        "/rates": {
            "get": {
                "description": "Fetches today's rate table for the base currency and returns the quote entry. Same-currency pairs return 1 without calling the upstream API.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "rates"
                ],
                "summary": "Get today's rate for a currency pair",
                "parameters": [
                    {
                        "maxLength": 3,
                        "minLength": 3,
                        "type": "string",
                        "description": "Base currency code (3 letters)",
                        "name": "base",
                        "in": "query",
                        "required": true
                    },
                    {
                        "maxLength": 3,
                        "minLength": 3,
                        "type": "string",
                        "description": "Quote currency code (3 letters)",
                        "name": "quote",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Rate found",
                        "schema": {
                            "$ref": "#/definitions/api.RateResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid or unsupported currency code",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Quote currency missing from the rate table",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Upstream rate API failed",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "504": {
                        "description": "Request deadline expired",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/rates/history": {
            "get": {
                "description": "Fetches one rate table per day for the last ` + "`" + `days` + "`" + ` days ending today and returns the quote rate of each day, oldest first. Fails as a whole if any day fails.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "rates"
                ],
                "summary": "Get the trailing daily history of a currency pair",
                "parameters": [
                    {
                        "maxLength": 3,
                        "minLength": 3,
                        "type": "string",
                        "description": "Base currency code (3 letters)",
                        "name": "base",
                        "in": "query",
                        "required": true
                    },
                    {
                        "maxLength": 3,
                        "minLength": 3,
                        "type": "string",
                        "description": "Quote currency code (3 letters)",
                        "name": "quote",
                        "in": "query",
                        "required": true
                    },
                    {
                        "minimum": 1,
                        "type": "integer",
                        "description": "Number of days (defaults to the configured window)",
                        "name": "days",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Series built",
                        "schema": {
                            "$ref": "#/definitions/api.HistoryResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid pair or day count",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Quote currency missing from a day's rate table",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Upstream rate API failed for a day",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    },
                    "504": {
                        "description": "Request deadline expired before the series was complete",
                        "schema": {
                            "$ref": "#/definitions/api.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.CurrenciesResponse": {
            "type": "object",
            "properties": {
                "currencies": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    },
                    "example": [
                        "AUD",
                        "BGN",
                        "BRL"
                    ]
                }
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "invalid currency code format"
                }
            }
        },
        "api.HistoryResponse": {
            "type": "object",
            "properties": {
                "base": {
                    "type": "string",
                    "example": "EUR"
                },
                "points": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/api.PointResponse"
                    }
                },
                "quote": {
                    "type": "string",
                    "example": "USD"
                }
            }
        },
        "api.PointResponse": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string",
                    "example": "2026-10-16"
                },
                "rate": {
                    "type": "string",
                    "example": "1.0874"
                }
            }
        },
        "api.RateResponse": {
            "type": "object",
            "properties": {
                "base": {
                    "type": "string",
                    "example": "EUR"
                },
                "date": {
                    "type": "string",
                    "example": "2026-10-16"
                },
                "quote": {
                    "type": "string",
                    "example": "USD"
                },
                "rate": {
                    "type": "string",
                    "example": "1.0874"
                }
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
	Title:            "Rate Chart API",
	Description:      "Currency exchange rates and trailing daily history backed by the Frankfurter API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
