package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agrovista/agrodash/internal/models"
)

type createContractRequest struct {
	ContractNumber    string                    `json:"contract_number" validate:"required"`
	Institution       string                    `json:"institution" validate:"required"`
	Currency          string                    `json:"currency" validate:"omitempty,len=3"`
	PrincipalBalance  float64                   `json:"principal_balance" validate:"gte=0"`
	RateType          string                    `json:"rate_type" validate:"omitempty,oneof=fixed floating"`
	InterestRate      float64                   `json:"interest_rate" validate:"gte=0"`
	DisbursementDate  string                    `json:"disbursement_date" validate:"required,datetime=2006-01-02"`
	MaturityDate      string                    `json:"maturity_date" validate:"required,datetime=2006-01-02"`
	NextPaymentAmount float64                   `json:"next_payment_amount"`
	Collateral        string                    `json:"collateral"`
	CollateralValue   float64                   `json:"collateral_value" validate:"gte=0"`
	Covenants         []contractCovenantRequest `json:"covenants" validate:"dive"`
}

type contractCovenantRequest struct {
	Name     string  `json:"name" validate:"required"`
	Kind     string  `json:"kind" validate:"required,oneof=minimum maximum"`
	Required float64 `json:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active grace default paid"`
}

// CreateContract registers a new debt contract with its covenants
func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	contract, err := req.toModel()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.CreateContract(contract); err != nil {
		h.log.Errorf("Failed to create contract: %v", err)
		h.respondError(w, http.StatusInternalServerError, "failed to create contract")
		return
	}
	h.respondJSON(w, http.StatusCreated, contract)
}

// UpdateContractStatus transitions a contract's lifecycle state
func (h *Handler) UpdateContractStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.UpdateContractStatus(id, req.Status); err != nil {
		h.log.Errorf("Failed to update contract %d status: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "failed to update contract status")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// ReplaceCovenants swaps a contract's covenant set
func (h *Handler) ReplaceCovenants(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid contract id")
		return
	}

	var reqs []contractCovenantRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	covenants := make([]models.ContractCovenant, 0, len(reqs))
	for _, cr := range reqs {
		if err := h.validate.Struct(cr); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		covenants = append(covenants, models.ContractCovenant{
			ContractID: id,
			Name:       cr.Name,
			Kind:       cr.Kind,
			Required:   cr.Required,
			Status:     models.CovenantStatusCompliant,
		})
	}

	if err := h.svc.ReplaceCovenants(id, covenants); err != nil {
		h.log.Errorf("Failed to replace covenants on contract %d: %v", id, err)
		h.respondError(w, http.StatusInternalServerError, "failed to replace covenants")
		return
	}
	h.respondJSON(w, http.StatusOK, covenants)
}

func (r createContractRequest) toModel() (*models.DebtContract, error) {
	disbursed, err := parseDay(r.DisbursementDate)
	if err != nil {
		return nil, err
	}
	maturity, err := parseDay(r.MaturityDate)
	if err != nil {
		return nil, err
	}

	c := &models.DebtContract{
		ContractNumber:    r.ContractNumber,
		Institution:       r.Institution,
		Currency:          r.Currency,
		PrincipalBalance:  r.PrincipalBalance,
		RateType:          r.RateType,
		InterestRate:      r.InterestRate,
		DisbursementDate:  disbursed,
		MaturityDate:      maturity,
		NextPaymentAmount: r.NextPaymentAmount,
		Collateral:        r.Collateral,
		CollateralValue:   r.CollateralValue,
	}
	for _, cr := range r.Covenants {
		c.Covenants = append(c.Covenants, models.ContractCovenant{
			Name:     cr.Name,
			Kind:     cr.Kind,
			Required: cr.Required,
			Status:   models.CovenantStatusCompliant,
		})
	}
	return c, nil
}
