package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>MiniBank API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "MiniBank API",
    "version": "1.0.0"
  },
  "paths": {
    "/users": {
      "post": {
        "summary": "Create user",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["login", "email", "password"],
                "properties": {
                  "login": {"type": "string"},
                  "email": {"type": "string", "format": "email"},
                  "password": {"type": "string", "minLength": 8}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "Get all users",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "200": {"description": "Users fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/users/{id}": {
      "get": {
        "summary": "Get user by id",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {"type": "string", "format": "uuid"}
          }
        ],
        "responses": {
          "200": {"description": "User fetched"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "User not found"},
          "500": {"description": "Server error"}
        }
      },
      "put": {
        "summary": "Update user",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {"type": "string", "format": "uuid"}
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["login", "email"],
                "properties": {
                  "login": {"type": "string"},
                  "email": {"type": "string", "format": "email"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "User updated"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "User not found"},
          "500": {"description": "Server error"}
        }
      },
      "delete": {
        "summary": "Delete user",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "id",
            "in": "path",
            "required": true,
            "schema": {"type": "string", "format": "uuid"}
          }
        ],
        "responses": {
          "200": {"description": "User deleted"},
          "400": {"description": "User still has accounts"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "User not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts": {
      "post": {
        "summary": "Create account",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["userId", "currency"],
                "properties": {
                  "userId": {"type": "string", "format": "uuid"},
                  "currency": {"type": "string", "enum": ["EUR", "USD", "RUB"]},
                  "initialAmount": {"type": "string", "example": "100.00"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "Get accounts by user",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "userId",
            "in": "query",
            "required": true,
            "schema": {"type": "string", "format": "uuid"}
          }
        ],
        "responses": {
          "200": {"description": "Accounts fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/close": {
      "post": {
        "summary": "Close account",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountId"],
                "properties": {
                  "accountId": {"type": "string", "format": "uuid"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Account closed"},
          "400": {"description": "Validation error or non-zero balance"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transfers": {
      "post": {
        "summary": "Transfer funds between accounts",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["amount", "fromAccountId", "toAccountId"],
                "properties": {
                  "amount": {"type": "string", "example": "50.00"},
                  "fromAccountId": {"type": "string", "format": "uuid"},
                  "toAccountId": {"type": "string", "format": "uuid"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transfer completed"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "422": {"description": "Insufficient balance"},
          "500": {"description": "Server error"},
          "503": {"description": "Exchange rate unavailable"}
        }
      },
      "get": {
        "summary": "Get transfers sent from an account",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "fromAccountId",
            "in": "query",
            "required": true,
            "schema": {"type": "string", "format": "uuid"}
          }
        ],
        "responses": {
          "200": {"description": "Transfers fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transfers/commission": {
      "post": {
        "summary": "Quote the commission for a transfer",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["amount", "fromAccountId", "toAccountId"],
                "properties": {
                  "amount": {"type": "string", "example": "50.00"},
                  "fromAccountId": {"type": "string", "format": "uuid"},
                  "toAccountId": {"type": "string", "format": "uuid"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Commission calculated"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/convert": {
      "get": {
        "summary": "Convert an amount between currencies",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "amount",
            "in": "query",
            "required": true,
            "schema": {"type": "string", "example": "100.00"}
          },
          {
            "name": "from",
            "in": "query",
            "required": true,
            "schema": {"type": "string", "enum": ["EUR", "USD", "RUB"]}
          },
          {
            "name": "to",
            "in": "query",
            "required": true,
            "schema": {"type": "string", "enum": ["EUR", "USD", "RUB"]}
          }
        ],
        "responses": {
          "200": {"description": "Amount converted"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"},
          "503": {"description": "Exchange rate unavailable"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {
        "type": "http",
        "scheme": "basic"
      }
    }
  }
}`
