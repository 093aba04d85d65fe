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
  <title>Ledger Service API Docs</title>
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
    "title": "Ledger Service API",
    "version": "1.0.0"
  },
  "paths": {
    "/api/accounts": {
      "post": {
        "summary": "Open account",
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
                "required": ["customerId", "initialDeposit"],
                "properties": {
                  "customerId": {
                    "type": "string"
                  },
                  "initialDeposit": {
                    "type": "string",
                    "example": "500.00"
                  }
                }
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Account created"
          },
          "400": {
            "description": "Validation failed"
          },
          "404": {
            "description": "Customer not found"
          }
        }
      }
    },
    "/api/accounts/transfer": {
      "post": {
        "summary": "Transfer funds between two accounts",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "Idempotency-Key",
            "in": "header",
            "required": false,
            "schema": {
              "type": "string"
            }
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["fromAccountId", "toAccountId", "amount"],
                "properties": {
                  "fromAccountId": {
                    "type": "string"
                  },
                  "toAccountId": {
                    "type": "string"
                  },
                  "amount": {
                    "type": "string",
                    "example": "100.00"
                  },
                  "description": {
                    "type": "string"
                  },
                  "idempotencyKey": {
                    "type": "string"
                  }
                }
              }
            }
          }
        },
        "responses": {
          "201": {
            "description": "Transfer completed"
          },
          "200": {
            "description": "Transfer replayed for a known idempotency key"
          },
          "400": {
            "description": "Validation failed"
          },
          "404": {
            "description": "Source or destination account not found"
          },
          "409": {
            "description": "Concurrent conflict, retry"
          },
          "422": {
            "description": "Insufficient funds"
          }
        }
      }
    },
    "/api/accounts/{accountId}/balance": {
      "get": {
        "summary": "Get account balance",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "accountId",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Account snapshot"
          },
          "404": {
            "description": "Account not found"
          }
        }
      }
    },
    "/api/accounts/{accountId}/transfers": {
      "get": {
        "summary": "Get transfer history, most recent first",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "accountId",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Ordered transfer list"
          },
          "404": {
            "description": "Account not found"
          }
        }
      }
    },
    "/api/customers": {
      "get": {
        "summary": "List customers",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "Customer list"
          }
        }
      }
    },
    "/api/customers/{customerId}": {
      "get": {
        "summary": "Get customer",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "parameters": [
          {
            "name": "customerId",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string"
            }
          }
        ],
        "responses": {
          "200": {
            "description": "Customer"
          },
          "404": {
            "description": "Customer not found"
          }
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
