// Package docs registers the OpenAPI document served under /swagger/.
// Regenerate it from the handler annotations with `swag init -g cmd/storefront/main.go`.
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
        "/auth/register": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Create an account",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/login": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Sign in",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Sign out",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/forgot-password": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Request a password reset",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/reset-password/{token}": {
            "put": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Reset a password",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "List products",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Get a product",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/storefront/sections/{section}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Storefront"],
                "summary": "Get a storefront section",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/storefront/flash-sale": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Storefront"],
                "summary": "Get the flash sale",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/countries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Storefront"],
                "summary": "List shipping countries",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/cart": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Get the cart",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Empty the cart",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/cart/items": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Add a product to the cart",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/cart/items/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Remove a product from the cart",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/mutations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Cart"],
                "summary": "Recent cart and favorites changes",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/favorites": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "Get favorites",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "Add a favorite",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/favorites/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Favorites"],
                "summary": "Remove a favorite",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Orders"],
                "summary": "List the caller's orders",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/orders/{id}/cancel": {
            "put": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Orders"],
                "summary": "Cancel an order",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/checkout/shipping": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Checkout"],
                "summary": "Checkout step 1: shipping",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/checkout/payment": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Checkout"],
                "summary": "Checkout step 2: payment",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/checkout/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Checkout"],
                "summary": "Get a checkout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/payments/webhook": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Checkout"],
                "summary": "Card payment webhook",
                "responses": {"200": {"description": "OK"}}
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
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "Cart, favorites, catalog windows and checkout in front of the commerce backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
