// Package balance projects an account's balance and recent transfers for
// display: direction, confirmation status, signed magnitude and unit.
package balance

import (
	"sort"
	"time"
)

// DefaultRecentLimit is how many transfers the balance screen shows.
const DefaultRecentLimit = 4

// Tx is one entry of a transfer bundle.
type Tx struct {
	Address string `json:"address"`
	Value   int64  `json:"value"`
}

// Transfer is a bundle of entries sharing a timestamp and confirmation state.
type Transfer struct {
	Timestamp    int64 `json:"timestamp"` // unix seconds
	Persistence  bool  `json:"persistence"`
	Transactions []Tx  `json:"transactions"`
}

// AddressSet is the set of addresses owned by the active identity.
type AddressSet map[string]struct{}

func NewAddressSet(addrs ...string) AddressSet {
	s := make(AddressSet, len(addrs))
	for _, a := range addrs {
		s[a] = struct{}{}
	}
	return s
}

func (s AddressSet) Has(addr string) bool {
	_, ok := s[addr]
	return ok
}

// Incoming reports whether no entry of t spends from an owned address.
func Incoming(t Transfer, own AddressSet) bool {
	for _, tx := range t.Transactions {
		if tx.Value < 0 && own.Has(tx.Address) {
			return false
		}
	}
	return true
}

// Value is the magnitude moved by t: for incoming transfers what reached
// owned addresses, for outgoing ones what left to foreign addresses.
func Value(t Transfer, own AddressSet) int64 {
	incoming := Incoming(t, own)
	var sum int64
	for _, tx := range t.Transactions {
		if tx.Value <= 0 {
			continue
		}
		if own.Has(tx.Address) == incoming {
			sum += tx.Value
		}
	}
	return sum
}

// Status is the confirmation label of a transfer.
type Status int

const (
	Received Status = iota + 1
	Receiving
	Sent
	Sending
)

// StatusOf derives the label from confirmation and direction.
func StatusOf(confirmed, incoming bool) Status {
	switch {
	case incoming && confirmed:
		return Received
	case incoming:
		return Receiving
	case confirmed:
		return Sent
	default:
		return Sending
	}
}

// MessageID is the localisation key of the label.
func (s Status) MessageID() string {
	switch s {
	case Received:
		return "received"
	case Receiving:
		return "receiving"
	case Sent:
		return "sent"
	case Sending:
		return "sending"
	}
	return "unknown"
}

func (s Status) String() string { return s.MessageID() }

// Sign is empty for a zero value, "+" for incoming and "-" for outgoing.
func Sign(value int64, incoming bool) string {
	if value == 0 {
		return ""
	}
	if incoming {
		return "+"
	}
	return "-"
}

// Row is one projected transfer.
type Row struct {
	Time     time.Time
	Status   Status
	Incoming bool
	Sign     string
	Value    float64 // in Unit, rounded to one decimal
	Unit     string
}

// Recent projects the first limit transfers and orders them newest first.
// A non-positive limit selects DefaultRecentLimit.
func Recent(transfers []Transfer, own AddressSet, limit int) []Row {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if len(transfers) > limit {
		transfers = transfers[:limit]
	}

	rows := make([]Row, 0, len(transfers))
	for _, t := range transfers {
		incoming := Incoming(t, own)
		value := Value(t, own)
		rows = append(rows, Row{
			Time:     time.Unix(t.Timestamp, 0),
			Status:   StatusOf(t.Persistence, incoming),
			Incoming: incoming,
			Sign:     Sign(value, incoming),
			Value:    Round(FormatValue(value), 1),
			Unit:     FormatUnit(value),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Time.After(rows[j].Time)
	})
	return rows
}

// Total sums what the owned addresses hold across the given transfers'
// confirmed entries. Unconfirmed bundles do not count.
func Total(transfers []Transfer, own AddressSet) int64 {
	var sum int64
	for _, t := range transfers {
		if !t.Persistence {
			continue
		}
		for _, tx := range t.Transactions {
			if own.Has(tx.Address) {
				sum += tx.Value
			}
		}
	}
	return sum
}
