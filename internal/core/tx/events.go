package tx

// Event names emitted into transaction metadata. Consumers subscribe to
// these over the event stream.
const (
	EventOrderExecuted     = "order-executed"
	EventOfferExecuted     = "offer-executed"
	EventIntentCancelled   = "intent-cancelled"
	EventNonceConsumed     = "nonce-consumed"
	EventAuctionCreated    = "auction-created"
	EventBidPlaced         = "bid-placed"
	EventAuctionEnded      = "auction-ended"
	EventBidWithdrawn      = "bid-withdrawn"
	EventAuctionCancelled  = "auction-cancelled"
	EventConfigUpdated     = "configuration-updated"
	EventCollectionCreated = "collection-created"
	EventTokenMinted       = "token-minted"
	EventTokenApproved     = "token-approved"
	EventFeesWithdrawn     = "fees-withdrawn"
	EventCreditDeposited   = "credit-deposited"
	EventCreditApproved    = "credit-approved"
)

// Event is a single named occurrence recorded while applying a transaction.
type Event struct {
	Name  string            `json:"name"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

// ChangedEntry records one ledger entry touched by a transaction.
type ChangedEntry struct {
	Action    string `json:"action"` // created, modified or deleted
	EntryType string `json:"entryType"`
	Key       string `json:"key"` // hex keylet key
}

// Metadata collects everything observable about an applied transaction
// beyond its result code.
type Metadata struct {
	Changes []ChangedEntry `json:"changes,omitempty"`
	Events  []Event        `json:"events,omitempty"`
}

func (m *Metadata) emit(name string, attrs map[string]string) {
	m.Events = append(m.Events, Event{Name: name, Attrs: attrs})
}
