package controller_test

import (
	"net/http"
	"testing"

	"github.com/corebank/ledger-service/internal/adapter/http/models"
)

func TestListCustomersEndpoint(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodGet, "/api/customers", nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", recorder.Code, recorder.Body.String())
	}

	response := decodeResponse[[]models.CustomerResponse](t, recorder)
	customers := *response.Data
	if len(customers) != 1 {
		t.Fatalf("got %d customers, want 1", len(customers))
	}
	if customers[0].Name != "Rhonda Church" {
		t.Fatalf("customer name = %s, want Rhonda Church", customers[0].Name)
	}
}

func TestGetCustomerEndpoint(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodGet, "/api/customers/"+server.customerID, nil, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", recorder.Code, recorder.Body.String())
	}

	response := decodeResponse[models.CustomerResponse](t, recorder)
	if response.Data.ID != server.customerID {
		t.Fatalf("customer id = %s, want %s", response.Data.ID, server.customerID)
	}
}

func TestGetCustomerEndpointUnknownID(t *testing.T) {
	server := newTestServer(t)

	recorder := server.do(t, http.MethodGet, "/api/customers/no-such-customer", nil, nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body %s", recorder.Code, recorder.Body.String())
	}
}
