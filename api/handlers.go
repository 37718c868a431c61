package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pegfee/pegfee-node/core/code"
	eventsdb "github.com/pegfee/pegfee-node/core/events"
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/pegfee/pegfee-node/helpers"
	"github.com/pkg/errors"
)

type StatusResponse struct {
	Version         string        `json:"version"`
	Name            string        `json:"name"`
	Symbol          string        `json:"symbol"`
	TotalSupply     string        `json:"total_supply"`
	TransferFeeRate string        `json:"transfer_fee_rate"`
	FeePool         string        `json:"fee_pool"`
	Self            types.Address `json:"self"`
	Ledger          types.Address `json:"ledger"`
	Owner           types.Address `json:"owner"`
	Issuer          types.Address `json:"issuer"`
	FeeAuthority    types.Address `json:"fee_authority"`
	Court           types.Address `json:"court"`
	StateVersion    int64         `json:"state_version"`
	StateHash       string        `json:"state_hash"`
}

func (s *Server) Status(w http.ResponseWriter, r *http.Request) {
	token, err := s.node.Token()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	st := s.node.CurrentState()

	writeResult(w, StatusResponse{
		Version:         s.version,
		Name:            token.Name(),
		Symbol:          token.Symbol(),
		TotalSupply:     helpers.ValueToString(token.TotalSupply()),
		TransferFeeRate: helpers.ValueToString(token.TransferFeeRate()),
		FeePool:         helpers.ValueToString(token.FeePool()),
		Self:            token.Self(),
		Ledger:          token.Ledger(),
		Owner:           token.Owner(),
		Issuer:          token.Issuer(),
		FeeAuthority:    token.FeeAuthority(),
		Court:           token.Court(),
		StateVersion:    st.Version(),
		StateHash:       fmt.Sprintf("%X", st.Hash()),
	})
}

type BalanceResponse struct {
	Address types.Address `json:"address"`
	Balance string        `json:"balance"`
	Frozen  bool          `json:"frozen"`
}

func (s *Server) Balance(w http.ResponseWriter, r *http.Request) {
	token, err := s.node.Token()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	address, err := parseAddress(chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeResult(w, BalanceResponse{
		Address: address,
		Balance: helpers.ValueToString(token.BalanceOf(address)),
		Frozen:  token.IsFrozen(address),
	})
}

type AllowanceResponse struct {
	Owner   types.Address `json:"owner"`
	Spender types.Address `json:"spender"`
	Value   string        `json:"value"`
}

func (s *Server) Allowance(w http.ResponseWriter, r *http.Request) {
	token, err := s.node.Token()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	owner, err := parseAddress(chi.URLParam(r, "owner"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	spender, err := parseAddress(chi.URLParam(r, "spender"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeResult(w, AllowanceResponse{
		Owner:   owner,
		Spender: spender,
		Value:   helpers.ValueToString(token.Allowance(owner, spender)),
	})
}

func (s *Server) Frozen(w http.ResponseWriter, r *http.Request) {
	token, err := s.node.Token()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	address, err := parseAddress(chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeResult(w, map[string]bool{"frozen": token.IsFrozen(address)})
}

type EstimateResponse struct {
	Value          string `json:"value"`
	Fee            string `json:"fee"`
	AmountReceived string `json:"amount_received"`
	TotalCharged   string `json:"total_charged"`
}

// Estimate shows both fee modes for ?value= given in base units.
func (s *Server) Estimate(w http.ResponseWriter, r *http.Request) {
	token, err := s.node.Token()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	value, err := helpers.ParseValue(r.URL.Query().Get("value"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(code.ErrInvalidValue, err.Error()))
		return
	}

	received, err := token.AmountReceived(value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	fee, err := token.TransferFeeIncurred(value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	total, err := token.TransferPlusFee(value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeResult(w, EstimateResponse{
		Value:          helpers.ValueToString(value),
		Fee:            helpers.ValueToString(fee),
		AmountReceived: helpers.ValueToString(received),
		TotalCharged:   helpers.ValueToString(total),
	})
}

type EventResponse struct {
	Type  string         `json:"type"`
	Value eventsdb.Event `json:"value"`
}

func (s *Server) Events(w http.ResponseWriter, r *http.Request) {
	version, err := strconv.ParseUint(chi.URLParam(r, "version"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(code.ErrInvalidValue, "version"))
		return
	}

	items, err := s.node.GetEventsDB().LoadEvents(version)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeResult(w, EncodeEvents(items))
}

// EncodeEvents tags every event with its type name for JSON output.
func EncodeEvents(items eventsdb.Events) []EventResponse {
	result := make([]EventResponse, 0, len(items))
	for _, event := range items {
		result = append(result, EventResponse{Type: event.Type(), Value: event})
	}

	return result
}

func parseAddress(s string) (types.Address, error) {
	address, err := types.ParseAddress(s)
	if err != nil {
		return types.Address{}, errors.Wrap(code.ErrInvalidValue, err.Error())
	}

	return address, nil
}
