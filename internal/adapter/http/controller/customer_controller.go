package controller

import (
	"net/http"

	"github.com/corebank/ledger-service/internal/usecase/service_interfaces"
)

type CustomerController struct {
	customerService service_interfaces.CustomerService
}

func NewCustomerController(customerService service_interfaces.CustomerService) *CustomerController {
	return &CustomerController{customerService: customerService}
}

func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(handler http.Handler) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(handler)
		}
		return handler
	}

	mux.Handle("GET /api/customers", wrap(http.HandlerFunc(c.getAllCustomers)))
	mux.Handle("GET /api/customers/{customerId}", wrap(http.HandlerFunc(c.getCustomer)))
}

func (c *CustomerController) getAllCustomers(w http.ResponseWriter, r *http.Request) {
	response, err := c.customerService.GetAllCustomers(r.Context())
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (c *CustomerController) getCustomer(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("customerId")

	response, err := c.customerService.GetCustomer(r.Context(), customerID)
	if err != nil {
		writeJSON(w, statusForError(err, response.Message), response)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
