package handler

import (
	"net/http"

	"connectdemo/internal/model"
	"connectdemo/internal/service"
)

type customersResponse struct {
	Success   bool             `json:"success"`
	Customers []model.Customer `json:"customers"`
}

type customerResponse struct {
	Success  bool           `json:"success"`
	Customer model.Customer `json:"customer"`
}

func ListCustomersHandler(svc *service.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := svc.List(r.Context(), r.URL.Query().Get("account_id"))
		if err != nil {
			failEnvelope(w, err)
			return
		}
		writeJSON(w, http.StatusOK, customersResponse{Success: true, Customers: customers})
	}
}

func CreateCustomerHandler(svc *service.CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.NewCustomer
		if err := readJSON(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, envelope{Message: err.Error()})
			return
		}

		c, err := svc.Create(r.Context(), req)
		if err != nil {
			failEnvelope(w, err)
			return
		}
		writeJSON(w, http.StatusOK, customerResponse{Success: true, Customer: c})
	}
}
