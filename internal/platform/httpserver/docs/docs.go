// Package docs registers the ledger API description with swag so that
// http-swagger can serve it at /swagger/doc.json.
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
        "/api/ledger/v1/users": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a user for the caller. Returns registered=false when the caller already has one.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Register the calling principal",
                "parameters": [
                    {
                        "description": "Registration",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.RegisterUserRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.RegisterUserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/ledger/v1/campaigns": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates an open campaign owned by the caller and returns its sequential id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Create a campaign",
                "parameters": [
                    {
                        "description": "Campaign",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.CreateCampaignRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CreateCampaignResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/ledger/v1/campaigns/search": {
            "get": {
                "description": "Case-insensitive substring match on title or description. An empty query returns every campaign.",
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Search campaigns",
                "parameters": [
                    {"type": "string", "description": "Search text", "name": "query", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.SearchCampaignsResponse"}}
                }
            }
        },
        "/api/ledger/v1/campaigns/{campaign_id}/contributions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Records a contribution. accepted=false when the campaign is unknown or closed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Contribute to a campaign",
                "parameters": [
                    {"type": "integer", "description": "Campaign id", "name": "campaign_id", "in": "path", "required": true},
                    {
                        "description": "Contribution",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.ContributeRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ContributeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/ledger/v1/campaigns/{campaign_id}/close": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Closes a campaign for further contributions. closed=false when unknown or already closed.",
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Close a campaign",
                "parameters": [
                    {"type": "integer", "description": "Campaign id", "name": "campaign_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CloseCampaignResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/ledger/v1/campaigns/{campaign_id}/statistics": {
            "get": {
                "description": "Total raised and contribution count. Unknown campaigns report zeros.",
                "produces": ["application/json"],
                "tags": ["ledger"],
                "summary": "Campaign statistics",
                "parameters": [
                    {"type": "integer", "description": "Campaign id", "name": "campaign_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.CampaignStatisticsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "http.ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "http.RegisterUserRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}}
        },
        "http.RegisterUserResponse": {
            "type": "object",
            "properties": {"registered": {"type": "boolean"}}
        },
        "http.CreateCampaignRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "goal": {"type": "integer", "minimum": 0}
            }
        },
        "http.CreateCampaignResponse": {
            "type": "object",
            "properties": {"campaignId": {"type": "integer", "minimum": 0}}
        },
        "http.ContributeRequest": {
            "type": "object",
            "properties": {"amount": {"type": "integer", "minimum": 0}}
        },
        "http.ContributeResponse": {
            "type": "object",
            "properties": {"accepted": {"type": "boolean"}}
        },
        "http.CloseCampaignResponse": {
            "type": "object",
            "properties": {"closed": {"type": "boolean"}}
        },
        "http.CampaignDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "minimum": 0},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "creator": {"type": "string"},
                "goal": {"type": "integer", "minimum": 0},
                "raised": {"type": "integer", "minimum": 0},
                "contributors": {"type": "array", "items": {"type": "string"}},
                "isClosed": {"type": "boolean"}
            }
        },
        "http.SearchCampaignsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/http.CampaignDTO"}}
            }
        },
        "http.CampaignStatisticsResponse": {
            "type": "object",
            "properties": {
                "totalRaised": {"type": "integer", "minimum": 0},
                "totalContributors": {"type": "integer", "minimum": 0}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PeerRaise Ledger API",
	Description:      "Crowdfunding ledger: users, campaigns, contributions and statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
