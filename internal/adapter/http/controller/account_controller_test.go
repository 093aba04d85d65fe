package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corebank/ledger-service/internal/adapter/http/controller"
	"github.com/corebank/ledger-service/internal/adapter/http/models"
	"github.com/corebank/ledger-service/internal/adapter/http/router"
	"github.com/corebank/ledger-service/internal/adapter/repository/memory"
	"github.com/corebank/ledger-service/internal/commons"
	"github.com/corebank/ledger-service/internal/domain"
	"github.com/corebank/ledger-service/internal/usecase/services"
)

type testServer struct {
	mux        *http.ServeMux
	customerID string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	accountRepo := memory.NewAccountRepository(store)
	transferRepo := memory.NewTransferRepository(store)
	customerRepo := memory.NewCustomerRepository(store)

	if err := customerRepo.CreateAll(context.Background(), []domain.Customer{{Name: "Rhonda Church"}}); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	customers, err := customerRepo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}

	mux := router.New(
		controller.NewAccountController(
			services.NewAccountService(accountRepo, customerRepo),
			services.NewTransferService(transferRepo, accountRepo, nil),
			services.NewQueryService(accountRepo, transferRepo, customerRepo),
		),
		controller.NewCustomerController(services.NewCustomerService(customerRepo)),
		nil,
	)

	return &testServer{mux: mux, customerID: customers[0].ID}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	recorder := httptest.NewRecorder()
	s.mux.ServeHTTP(recorder, req)
	return recorder
}

func decodeResponse[T any](t *testing.T, recorder *httptest.ResponseRecorder) commons.Response[T] {
	t.Helper()

	var response commons.Response[T]
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
	return response
}

func (s *testServer) openAccount(t *testing.T, deposit string) models.AccountResponse {
	t.Helper()

	recorder := s.do(t, http.MethodPost, "/api/accounts", map[string]string{
		"customerId":     s.customerID,
		"initialDeposit": deposit,
	}, nil)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("open account status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	return *decodeResponse[models.AccountResponse](t, recorder).Data
}

func TestCreateAccountEndpoint(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodPost, "/api/accounts", map[string]string{
		"customerId":     server.customerID,
		"initialDeposit": "500.00",
	}, nil)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", recorder.Code, recorder.Body.String())
	}

	response := decodeResponse[models.AccountResponse](t, recorder)
	if !response.Success {
		t.Fatalf("success = false: %s", response.Message)
	}
	if got := response.Data.Balance.StringFixed(2); got != "500.00" {
		t.Fatalf("balance = %s, want 500.00", got)
	}
	if response.Data.CustomerName != "Rhonda Church" {
		t.Fatalf("customer name = %s, want Rhonda Church", response.Data.CustomerName)
	}
}

func TestCreateAccountEndpointUnknownCustomer(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodPost, "/api/accounts", map[string]string{
		"customerId":     "no-such-customer",
		"initialDeposit": "500.00",
	}, nil)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", recorder.Code, recorder.Body.String())
	}
}

func TestCreateAccountEndpointValidation(t *testing.T) {
	server := newTestServer(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing customer", map[string]string{"initialDeposit": "100.00"}},
		{"missing deposit", map[string]string{"customerId": server.customerID}},
		{"negative deposit", map[string]string{"customerId": server.customerID, "initialDeposit": "-1.00"}},
		{"sub-unit deposit", map[string]string{"customerId": server.customerID, "initialDeposit": "0.001"}},
	}

	for _, tc := range cases {
		recorder := server.do(t, http.MethodPost, "/api/accounts", tc.body, nil)
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400, body %s", tc.name, recorder.Code, recorder.Body.String())
		}
	}
}

func TestCreateAccountEndpointMalformedBody(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/accounts", bytes.NewReader([]byte("{not json")))
	recorder := httptest.NewRecorder()
	server.mux.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestTransferEndpoint(t *testing.T) {
	server := newTestServer(t)
	source := server.openAccount(t, "1000.00")
	destination := server.openAccount(t, "500.00")

	recorder := server.do(t, http.MethodPost, "/api/accounts/transfer", map[string]string{
		"fromAccountId": source.ID,
		"toAccountId":   destination.ID,
		"amount":        "100.00",
		"description":   "rent",
	}, nil)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", recorder.Code, recorder.Body.String())
	}

	response := decodeResponse[models.TransferResponse](t, recorder)
	if got := response.Data.Amount.StringFixed(2); got != "100.00" {
		t.Fatalf("amount = %s, want 100.00", got)
	}
	if response.Data.Replayed {
		t.Fatal("fresh transfer marked as replayed")
	}

	balance := server.do(t, http.MethodGet, "/api/accounts/"+source.ID+"/balance", nil, nil)
	snapshot := decodeResponse[models.AccountResponse](t, balance)
	if got := snapshot.Data.Balance.StringFixed(2); got != "900.00" {
		t.Fatalf("source balance = %s, want 900.00", got)
	}
}

func TestTransferEndpointStatusMapping(t *testing.T) {
	server := newTestServer(t)
	source := server.openAccount(t, "100.00")
	destination := server.openAccount(t, "100.00")

	cases := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			"unknown source",
			map[string]string{"fromAccountId": "missing", "toAccountId": destination.ID, "amount": "10.00"},
			http.StatusNotFound,
		},
		{
			"unknown destination",
			map[string]string{"fromAccountId": source.ID, "toAccountId": "missing", "amount": "10.00"},
			http.StatusNotFound,
		},
		{
			"invalid amount",
			map[string]string{"fromAccountId": source.ID, "toAccountId": destination.ID, "amount": "0"},
			http.StatusBadRequest,
		},
		{
			"self transfer",
			map[string]string{"fromAccountId": source.ID, "toAccountId": source.ID, "amount": "10.00"},
			http.StatusBadRequest,
		},
		{
			"insufficient funds",
			map[string]string{"fromAccountId": source.ID, "toAccountId": destination.ID, "amount": "5000.00"},
			http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range cases {
		recorder := server.do(t, http.MethodPost, "/api/accounts/transfer", tc.body, nil)
		if recorder.Code != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d, body %s", tc.name, recorder.Code, tc.wantStatus, recorder.Body.String())
		}
	}
}

func TestTransferEndpointIdempotencyHeader(t *testing.T) {
	server := newTestServer(t)
	source := server.openAccount(t, "1000.00")
	destination := server.openAccount(t, "500.00")

	body := map[string]string{
		"fromAccountId": source.ID,
		"toAccountId":   destination.ID,
		"amount":        "100.00",
	}
	header := http.Header{"Idempotency-Key": []string{"retry-safe-7"}}

	first := server.do(t, http.MethodPost, "/api/accounts/transfer", body, header)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d, want 201, body %s", first.Code, first.Body.String())
	}

	second := server.do(t, http.MethodPost, "/api/accounts/transfer", body, header)
	if second.Code != http.StatusOK {
		t.Fatalf("replay status = %d, want 200, body %s", second.Code, second.Body.String())
	}

	firstResponse := decodeResponse[models.TransferResponse](t, first)
	secondResponse := decodeResponse[models.TransferResponse](t, second)
	if secondResponse.Data.ID != firstResponse.Data.ID {
		t.Fatalf("replay returned transfer %s, want original %s", secondResponse.Data.ID, firstResponse.Data.ID)
	}
	if !secondResponse.Data.Replayed {
		t.Fatal("replay not flagged in response")
	}

	balance := server.do(t, http.MethodGet, "/api/accounts/"+source.ID+"/balance", nil, nil)
	snapshot := decodeResponse[models.AccountResponse](t, balance)
	if got := snapshot.Data.Balance.StringFixed(2); got != "900.00" {
		t.Fatalf("source balance = %s after replay, want a single debit", got)
	}
}

func TestBalanceEndpointUnknownAccount(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodGet, "/api/accounts/missing/balance", nil, nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", recorder.Code, recorder.Body.String())
	}
}

func TestHistoryEndpoint(t *testing.T) {
	server := newTestServer(t)
	source := server.openAccount(t, "1000.00")
	destination := server.openAccount(t, "500.00")

	for i := 1; i <= 3; i++ {
		recorder := server.do(t, http.MethodPost, "/api/accounts/transfer", map[string]string{
			"fromAccountId": source.ID,
			"toAccountId":   destination.ID,
			"amount":        fmt.Sprintf("%d.00", i*10),
		}, nil)
		if recorder.Code != http.StatusCreated {
			t.Fatalf("transfer %d status = %d, body %s", i, recorder.Code, recorder.Body.String())
		}
	}

	recorder := server.do(t, http.MethodGet, "/api/accounts/"+source.ID+"/transfers", nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", recorder.Code, recorder.Body.String())
	}

	response := decodeResponse[[]models.TransferResponse](t, recorder)
	history := *response.Data
	if len(history) != 3 {
		t.Fatalf("history has %d records, want 3", len(history))
	}
	wantAmounts := []string{"30.00", "20.00", "10.00"}
	for i, want := range wantAmounts {
		if got := history[i].Amount.StringFixed(2); got != want {
			t.Fatalf("history[%d].Amount = %s, want %s", i, got, want)
		}
	}
}

func TestHistoryEndpointUnknownAccount(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodGet, "/api/accounts/missing/transfers", nil, nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", recorder.Code, recorder.Body.String())
	}
}
