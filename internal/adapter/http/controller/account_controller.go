package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/usecase/service_interfaces"
)

type AccountController struct {
	accountService  service_interfaces.AccountService
	transferService service_interfaces.TransferService
	queryService    service_interfaces.QueryService
}

func NewAccountController(
	accountService service_interfaces.AccountService,
	transferService service_interfaces.TransferService,
	queryService service_interfaces.QueryService,
) *AccountController {
	return &AccountController{
		accountService:  accountService,
		transferService: transferService,
		queryService:    queryService,
	}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(handler http.Handler) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(handler)
		}
		return handler
	}

	mux.Handle("POST /api/accounts", wrap(http.HandlerFunc(c.createAccount)))
	mux.Handle("POST /api/accounts/transfer", wrap(http.HandlerFunc(c.transferFunds)))
	mux.Handle("GET /api/accounts/{accountId}/balance", wrap(http.HandlerFunc(c.getBalance)))
	mux.Handle("GET /api/accounts/{accountId}/transfers", wrap(http.HandlerFunc(c.getTransferHistory)))
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	response, err := c.accountService.CreateAccount(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

func (c *AccountController) transferFunds(w http.ResponseWriter, r *http.Request) {
	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error()))
		return
	}

	// The header form wins only when the body does not carry a key.
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		req.IdempotencyKey = r.Header.Get("Idempotency-Key")
	}

	response, err := c.transferService.TransferFunds(r.Context(), req)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	status := http.StatusCreated
	if response.Data != nil && response.Data.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, response)
}

func (c *AccountController) getBalance(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("accountId")

	response, err := c.queryService.GetBalance(r.Context(), accountID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) getTransferHistory(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("accountId")

	response, err := c.queryService.GetTransferHistory(r.Context(), accountID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
