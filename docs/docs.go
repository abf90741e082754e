// Package docs регистрирует swagger-спецификацию HTTP API для /swagger.
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
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Проверка живости",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.PingResponse"}}}
            }
        },
        "/api/articles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Список артикулов",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.ArticleResponse"}}}}
            },
            "post": {
                "consumes": ["multipart/form-data", "application/json"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Создание артикула",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "name": "brand", "in": "formData", "required": true},
                    {"type": "string", "name": "size", "in": "formData", "required": true},
                    {"type": "string", "name": "price", "in": "formData", "required": true},
                    {"type": "string", "name": "purchasePrice", "in": "formData"},
                    {"type": "string", "name": "status", "in": "formData"},
                    {"type": "string", "name": "comment", "in": "formData"},
                    {"type": "file", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.ArticleResponse"}},
                    "400": {"description": "Ошибка валидации", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/articles/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Артикул по id",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ArticleResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Частичное обновление артикула",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "schema": {"$ref": "#/definitions/http.updateArticleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ArticleResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Частичное обновление артикула",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "schema": {"$ref": "#/definitions/http.updateArticleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ArticleResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Удаление артикула",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/articles/{id}/sold": {
            "post": {
                "produces": ["application/json"],
                "tags": ["articles"],
                "summary": "Отметить артикул проданным",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ArticleResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/sales": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Журнал продаж",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.SaleResponse"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Регистрация продажи",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.recordSaleRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.SaleResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/dashboard-stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Метрики дашборда",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/http.DashboardStatsResponse"}}}
            }
        },
        "/api/generate-description": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["assistant"],
                "summary": "Генерация заголовка и описания по фото",
                "parameters": [
                    {"type": "file", "name": "image", "in": "formData", "required": true},
                    {"type": "string", "name": "price", "in": "formData", "required": true},
                    {"type": "string", "name": "size", "in": "formData", "required": true},
                    {"type": "string", "name": "brand", "in": "formData", "required": true},
                    {"type": "string", "name": "comment", "in": "formData"},
                    {"type": "integer", "name": "articleId", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.GeneratedListingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "502": {"description": "AI недоступен, повторите попытку", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/generate-responses": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assistant"],
                "summary": "Три варианта ответа покупателю",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.generateResponsesRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.RepliesResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/api/conversations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["assistant"],
                "summary": "Последние обращения покупателей",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/http.ConversationResponse"}}}}
            }
        },
        "/api/import-vinted": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "Импорт объявлений профиля Vinted",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.importRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.ImportResponse"}},
                    "422": {"description": "Площадка блокирует автоматический импорт", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "502": {"description": "Площадка недоступна", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "e.FieldError": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/e.FieldError"}}
            }
        },
        "http.ArticleResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "brand": {"type": "string"},
                "size": {"type": "string"},
                "price": {"type": "string"},
                "purchasePrice": {"type": "string"},
                "status": {"type": "string"},
                "imageUrl": {"type": "string"},
                "comment": {"type": "string"},
                "generatedTitle": {"type": "string"},
                "generatedDescription": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "http.updateArticleRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "brand": {"type": "string"},
                "size": {"type": "string"},
                "price": {"type": "string"},
                "purchasePrice": {"type": "string"},
                "status": {"type": "string"},
                "comment": {"type": "string"}
            }
        },
        "http.SaleResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "articleId": {"type": "integer"},
                "salePrice": {"type": "string"},
                "saleDate": {"type": "string"},
                "coefficient": {"type": "string"}
            }
        },
        "http.recordSaleRequest": {
            "type": "object",
            "properties": {"articleId": {"type": "integer"}, "salePrice": {"type": "string"}}
        },
        "http.DashboardStatsResponse": {
            "type": "object",
            "properties": {
                "totalArticles": {"type": "integer"},
                "monthlyItemsSold": {"type": "integer"},
                "monthlyRevenue": {"type": "string"},
                "monthlyMargin": {"type": "string"},
                "totalItemsSold": {"type": "integer"},
                "totalRevenue": {"type": "string"},
                "totalMargin": {"type": "string"},
                "averageCoefficient": {"type": "string"},
                "averageMarginPercent": {"type": "string"}
            }
        },
        "http.GeneratedListingResponse": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}}
        },
        "http.generateResponsesRequest": {
            "type": "object",
            "properties": {"customerMessage": {"type": "string"}}
        },
        "http.RepliesResponse": {
            "type": "object",
            "properties": {
                "responses": {"type": "array", "items": {"type": "string"}},
                "variants": {
                    "type": "array",
                    "items": {"type": "object", "properties": {"tone": {"type": "string"}, "text": {"type": "string"}}}
                }
            }
        },
        "http.ConversationResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "customerMessage": {"type": "string"},
                "generatedResponses": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"}
            }
        },
        "http.importRequest": {
            "type": "object",
            "properties": {"profileUrl": {"type": "string"}, "dryRun": {"type": "boolean"}}
        },
        "http.ImportResponse": {
            "type": "object",
            "properties": {
                "importedCount": {"type": "integer"},
                "fromCache": {"type": "boolean"},
                "articles": {"type": "array", "items": {"$ref": "#/definitions/http.ArticleResponse"}},
                "listings": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "title": {"type": "string"},
                            "price": {"type": "string"},
                            "size": {"type": "string"},
                            "brand": {"type": "string"},
                            "imageUrl": {"type": "string"}
                        }
                    }
                }
            }
        },
        "http.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "http.PingResponse": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "timestamp": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Resale Backend API",
	Description:      "Сток реселлера: артикулы, продажи, дашборд, AI-описания и импорт с Vinted.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
