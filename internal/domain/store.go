package domain

// SocialMedias holds the store's social links, all optional.
type SocialMedias struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Tiktok    string `json:"tiktok,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Youtube   string `json:"youtube,omitempty"`
	Discord   string `json:"discord,omitempty"`
	Twitch    string `json:"twitch,omitempty"`
	Steam     string `json:"steam,omitempty"`
}

// MenuLink is a custom navigation entry configured on the store.
type MenuLink struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// StoreInfo is the store profile returned by the provider's whoami call.
type StoreInfo struct {
	ID           int           `json:"id"`
	Owner        int           `json:"owner"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Domain       string        `json:"domain"`
	Logo         string        `json:"logo,omitempty"`
	Currency     string        `json:"currency"`
	Timezone     string        `json:"timezone"`
	Color        string        `json:"color,omitempty"`
	Country      string        `json:"country,omitempty"`
	SocialMedias *SocialMedias `json:"social_medias,omitempty"`
	MenuLinks    []MenuLink    `json:"menu_links,omitempty"`
}

// ThemeImages is one light/dark image set of a theme.
type ThemeImages struct {
	LogoHeader string `json:"logo_header,omitempty"`
	LogoFooter string `json:"logo_footer,omitempty"`
	HomeCover  string `json:"home_cover,omitempty"`
	Cover      string `json:"cover,omitempty"`
}

// ThemeWidgets configures which widgets the theme displays.
type ThemeWidgets struct {
	TopCustomer     int    `json:"top_customer"`
	FeaturedProduct int    `json:"featured_product"`
	TopProduct      int    `json:"top_product"`
	RelatedProduct  int    `json:"related_product"`
	Description     string `json:"description"`
}

// Theme is the store's active theme configuration.
type Theme struct {
	ID        int    `json:"id"`
	ShortName string `json:"short_name"`
	Name      string `json:"name"`
	Slug      struct {
		Product  string `json:"product"`
		Category string `json:"category"`
	} `json:"slug"`
	Images struct {
		Light ThemeImages `json:"light"`
		Dark  ThemeImages `json:"dark"`
	} `json:"images"`
	Mode    string       `json:"mode"`
	Widgets ThemeWidgets `json:"widgets"`
}

// Category is one store category.
type Category struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Hide         bool   `json:"hide"`
	MainRedirect bool   `json:"main_redirect"`
	ParentID     *int   `json:"parent_id,omitempty"`
	Description  string `json:"description,omitempty"`
	Image        string `json:"image,omitempty"`
}

// CategoriesResponse is a category listing page from the provider.
type CategoriesResponse struct {
	Categories      []Category `json:"categories"`
	CategoriesCount int        `json:"categories_count"`
}
