package domain

// Checkout line item types on the provider wire.
const (
	CheckoutTypeAddToCart = "addtocart"
	CheckoutTypeSubscribe = "subscribe"
)

// CheckoutProduct is one line item of a checkout request.
type CheckoutProduct struct {
	ProductID       int            `json:"product_id"`
	Type            string         `json:"type"`
	Quantity        int            `json:"quantity"`
	DonationAmount  *float64       `json:"donation_amount,omitempty"`
	ServerSelection *int           `json:"server_selection,omitempty"`
	CustomFields    map[string]any `json:"custom_fields,omitempty"`
}

// CheckoutUser is the identity bag sent with a checkout. Email is always
// required; which platform identifiers are required for a given cart is
// decided by the provider and fetched per checkout attempt.
type CheckoutUser struct {
	Email             string `json:"email" binding:"required,email"`
	Username          string `json:"username,omitempty"`
	MinecraftUsername string `json:"minecraft_username,omitempty"`
	MinecraftUUID     string `json:"minecraft_uuid,omitempty"`
	SteamID           string `json:"steam_id,omitempty"`
	DiscordID         string `json:"discord_id,omitempty"`
	EpicID            string `json:"epic_id,omitempty"`
	EosID             string `json:"eos_id,omitempty"`
	FivemCitizenID    string `json:"fivem_citizen_id,omitempty"`
	IngameUsername    string `json:"ingame_username,omitempty"`
	RustUsername      string `json:"rust_username,omitempty"`
}

// CheckoutRequest is the payload sent to the provider's checkout endpoint.
type CheckoutRequest struct {
	Products                 []CheckoutProduct `json:"products"`
	User                     CheckoutUser      `json:"user"`
	RedirectSuccessCheckout  string            `json:"redirect_success_checkout,omitempty"`
	RedirectCanceledCheckout string            `json:"redirect_canceled_checkout,omitempty"`
	RedirectPendingCheckout  string            `json:"redirect_pending_checkout,omitempty"`
}

// CheckoutResponse carries the hosted-checkout redirect URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// CheckoutIdentifiersResponse lists the identifier names the checkout form
// must collect for a given set of products.
type CheckoutIdentifiersResponse struct {
	Identifiers []string `json:"identifiers"`
}
