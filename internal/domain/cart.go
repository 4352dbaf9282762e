package domain

// SubscriptionType selects how a subscription-capable product is bought.
type SubscriptionType string

const (
	SubscriptionOnetime   SubscriptionType = "onetime"
	SubscriptionRecurring SubscriptionType = "recurring"
)

// CartEntry is one line of the cart. Product is a snapshot captured at
// add-time; later upstream price or stock changes do not mutate entries
// already in the cart. CustomFields is keyed by the field id rendered as a
// string, matching the provider's wire format.
type CartEntry struct {
	Product          Product          `json:"product"`
	Quantity         int              `json:"quantity"`
	CustomFields     map[string]any   `json:"customFields,omitempty"`
	ServerSelection  *int             `json:"serverSelection,omitempty"`
	DonationAmount   *float64         `json:"donationAmount,omitempty"`
	SubscriptionType SubscriptionType `json:"subscriptionType,omitempty"`
}

// CartSnapshotVersion is the current persisted cart schema version.
const CartSnapshotVersion = 1

// CartSnapshot is the durable form of a cart: the single named slot the
// session's cart is serialized into. LastModified is in milliseconds since
// the epoch.
type CartSnapshot struct {
	Version      int         `json:"version"`
	Items        []CartEntry `json:"items"`
	LastModified int64       `json:"lastModified"`
}
