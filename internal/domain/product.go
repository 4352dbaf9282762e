package domain

// Field types understood by the price engine. The provider is loose about
// naming select-style fields, so all four aliases are accepted.
const (
	FieldCheckbox  = "checkbox"
	FieldText      = "text"
	FieldTextarea  = "textarea"
	FieldNumber    = "number"
	FieldRange     = "range"
	FieldSelect    = "select"
	FieldSelection = "selection"
	FieldDropdown  = "dropdown"
	FieldChoice    = "choice"
)

// IsSelectType reports whether a field type is one of the select aliases.
func IsSelectType(fieldType string) bool {
	switch fieldType {
	case FieldSelect, FieldSelection, FieldDropdown, FieldChoice:
		return true
	}
	return false
}

// CustomFieldOption is one selectable option of a select-style field.
type CustomFieldOption struct {
	ID    int     `json:"id"`
	Order int     `json:"order"`
	Name  string  `json:"name"`
	Value any     `json:"value"`
	Price float64 `json:"price"`
}

// CustomField is a product-owned dynamic field. For number/range fields the
// price is a per-unit charge above the included baseline, not a flat
// surcharge. A field with Parent set is only visible (and billable) while
// the referenced sibling checkbox is checked.
type CustomField struct {
	ID           int                 `json:"id"`
	Order        int                 `json:"order"`
	Name         string              `json:"name"`
	Type         string              `json:"type"`
	Marker       string              `json:"marker,omitempty"`
	Instruction  string              `json:"instruction,omitempty"`
	IfNotFilled  string              `json:"if_not_filled,omitempty"`
	DefaultValue any                 `json:"default_value,omitempty"`
	Required     bool                `json:"required"`
	Minimum      *float64            `json:"minimum,omitempty"`
	Maximum      *float64            `json:"maximum,omitempty"`
	Step         *float64            `json:"step,omitempty"`
	NumberType   string              `json:"number_type,omitempty"`
	Price        float64             `json:"price,omitempty"`
	Parent       *int                `json:"parent,omitempty"`
	Options      []CustomFieldOption `json:"options,omitempty"`
}

// CustomRule constrains the sum of the numeric values of a set of fields.
// A rule with neither bound is vacuously valid.
type CustomRule struct {
	ID     int      `json:"id"`
	Order  int      `json:"order"`
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Fields []int    `json:"fields"`
}

// ServerOption is a game server the buyer can target a purchase at.
type ServerOption struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Product mirrors the Commerce Provider's product shape. Listing responses
// carry the general attributes; detail responses additionally populate the
// description, gallery, server options, custom fields and custom rules.
// Stock is nil when the product is unbounded.
type Product struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	Status            bool     `json:"status"`
	Slug              string   `json:"slug"`
	Price             float64  `json:"price"`
	OldPrice          *float64 `json:"old_price,omitempty"`
	PercentOff        *float64 `json:"percent_off,omitempty"`
	RecurringDiscount any      `json:"recurring_discount,omitempty"`
	SmallDescription  string   `json:"small_description,omitempty"`
	Category          any      `json:"category,omitempty"`
	Subscription      bool     `json:"subscription"`
	Stock             *int     `json:"stock,omitempty"`
	Periodicity       string   `json:"duration_periodicity,omitempty"`
	PeriodNum         *int     `json:"period_num,omitempty"`
	Trial             *int     `json:"trial,omitempty"`
	Featured          bool     `json:"featured"`
	Image             string   `json:"image,omitempty"`
	CreatedDate       int64    `json:"created_date"`
	SubscriptionCycle string   `json:"subscription_cycle,omitempty"`

	Description   string         `json:"description,omitempty"`
	Gallery       []string       `json:"gallery,omitempty"`
	Youtube       string         `json:"youtube,omitempty"`
	Donation      bool           `json:"donation,omitempty"`
	ServerChoice  bool           `json:"server_choice,omitempty"`
	ServerOptions []ServerOption `json:"server_options,omitempty"`
	Quantity      bool           `json:"quantity,omitempty"`
	CmdMultiplier bool           `json:"cmd_multiplier,omitempty"`
	Files         bool           `json:"files,omitempty"`
	Giftcard      bool           `json:"giftcard,omitempty"`
	EnableStock   bool           `json:"enable_stock,omitempty"`
	CumulSub      bool           `json:"cumul_sub,omitempty"`
	OnetimeSub    bool           `json:"onetime_sub,omitempty"`
	EnableTrial   bool           `json:"enable_trial,omitempty"`
	PurchaseLimit any            `json:"purchase_limit,omitempty"`
	CustomRules   []CustomRule   `json:"custom_rules,omitempty"`
	CustomFields  []CustomField  `json:"custom_fields,omitempty"`
	LastEdited    *int64         `json:"last_edited,omitempty"`
	RenewalStart  string         `json:"renewal_start,omitempty"`
}

// ProductsResponse is a product listing page from the provider.
type ProductsResponse struct {
	Products     []Product `json:"products"`
	ProductCount int       `json:"product_count"`
}
