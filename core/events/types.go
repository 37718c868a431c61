package events

import (
	"github.com/pegfee/pegfee-node/core/types"
	"github.com/tendermint/go-amino"
)

// Event type names
const (
	TypeTransferEvent            = "pegfee/TransferEvent"
	TypeApprovalEvent            = "pegfee/ApprovalEvent"
	TypeFeeRateUpdatedEvent      = "pegfee/FeeRateUpdatedEvent"
	TypeFeeAuthorityUpdatedEvent = "pegfee/FeeAuthorityUpdatedEvent"
	TypeIssuerUpdatedEvent       = "pegfee/IssuerUpdatedEvent"
	TypeCourtUpdatedEvent        = "pegfee/CourtUpdatedEvent"
	TypeLedgerUpdatedEvent       = "pegfee/LedgerUpdatedEvent"
	TypeAccountFrozenEvent       = "pegfee/AccountFrozenEvent"
	TypeAccountUnfrozenEvent     = "pegfee/AccountUnfrozenEvent"
	TypeIssuedEvent              = "pegfee/IssuedEvent"
	TypeBurnedEvent              = "pegfee/BurnedEvent"
	TypeFeesWithdrawnEvent       = "pegfee/FeesWithdrawnEvent"
	TypeFeesDonatedEvent         = "pegfee/FeesDonatedEvent"
)

func RegisterAminoEvents(codec *amino.Codec) {
	codec.RegisterInterface((*Event)(nil), nil)
	codec.RegisterConcrete(&TransferEvent{}, TypeTransferEvent, nil)
	codec.RegisterConcrete(&ApprovalEvent{}, TypeApprovalEvent, nil)
	codec.RegisterConcrete(&FeeRateUpdatedEvent{}, TypeFeeRateUpdatedEvent, nil)
	codec.RegisterConcrete(&FeeAuthorityUpdatedEvent{}, TypeFeeAuthorityUpdatedEvent, nil)
	codec.RegisterConcrete(&IssuerUpdatedEvent{}, TypeIssuerUpdatedEvent, nil)
	codec.RegisterConcrete(&CourtUpdatedEvent{}, TypeCourtUpdatedEvent, nil)
	codec.RegisterConcrete(&LedgerUpdatedEvent{}, TypeLedgerUpdatedEvent, nil)
	codec.RegisterConcrete(&AccountFrozenEvent{}, TypeAccountFrozenEvent, nil)
	codec.RegisterConcrete(&AccountUnfrozenEvent{}, TypeAccountUnfrozenEvent, nil)
	codec.RegisterConcrete(&IssuedEvent{}, TypeIssuedEvent, nil)
	codec.RegisterConcrete(&BurnedEvent{}, TypeBurnedEvent, nil)
	codec.RegisterConcrete(&FeesWithdrawnEvent{}, TypeFeesWithdrawnEvent, nil)
	codec.RegisterConcrete(&FeesDonatedEvent{}, TypeFeesDonatedEvent, nil)
}

type Event interface {
	Type() string
}

type Events []Event

// TransferEvent is emitted for every balance movement, fee credits to the
// pool included. Issuance comes from and burning goes to the null address.
type TransferEvent struct {
	From  types.Address `json:"from"`
	To    types.Address `json:"to"`
	Value string        `json:"value"`
}

func (e *TransferEvent) Type() string {
	return TypeTransferEvent
}

type ApprovalEvent struct {
	Owner   types.Address `json:"owner"`
	Spender types.Address `json:"spender"`
	Value   string        `json:"value"`
}

func (e *ApprovalEvent) Type() string {
	return TypeApprovalEvent
}

type FeeRateUpdatedEvent struct {
	Rate string `json:"rate"`
}

func (e *FeeRateUpdatedEvent) Type() string {
	return TypeFeeRateUpdatedEvent
}

type FeeAuthorityUpdatedEvent struct {
	FeeAuthority types.Address `json:"fee_authority"`
}

func (e *FeeAuthorityUpdatedEvent) Type() string {
	return TypeFeeAuthorityUpdatedEvent
}

type IssuerUpdatedEvent struct {
	Issuer types.Address `json:"issuer"`
}

func (e *IssuerUpdatedEvent) Type() string {
	return TypeIssuerUpdatedEvent
}

type CourtUpdatedEvent struct {
	Court types.Address `json:"court"`
}

func (e *CourtUpdatedEvent) Type() string {
	return TypeCourtUpdatedEvent
}

type LedgerUpdatedEvent struct {
	Ledger types.Address `json:"ledger"`
}

func (e *LedgerUpdatedEvent) Type() string {
	return TypeLedgerUpdatedEvent
}

// AccountFrozenEvent carries the confiscated amount.
type AccountFrozenEvent struct {
	Account types.Address `json:"account"`
	Amount  string        `json:"amount"`
}

func (e *AccountFrozenEvent) Type() string {
	return TypeAccountFrozenEvent
}

type AccountUnfrozenEvent struct {
	Account types.Address `json:"account"`
}

func (e *AccountUnfrozenEvent) Type() string {
	return TypeAccountUnfrozenEvent
}

type IssuedEvent struct {
	Account types.Address `json:"account"`
	Amount  string        `json:"amount"`
}

func (e *IssuedEvent) Type() string {
	return TypeIssuedEvent
}

type BurnedEvent struct {
	Account types.Address `json:"account"`
	Amount  string        `json:"amount"`
}

func (e *BurnedEvent) Type() string {
	return TypeBurnedEvent
}

type FeesWithdrawnEvent struct {
	Account types.Address `json:"account"`
	Value   string        `json:"value"`
}

func (e *FeesWithdrawnEvent) Type() string {
	return TypeFeesWithdrawnEvent
}

type FeesDonatedEvent struct {
	Donor types.Address `json:"donor"`
	Value string        `json:"value"`
}

func (e *FeesDonatedEvent) Type() string {
	return TypeFeesDonatedEvent
}
