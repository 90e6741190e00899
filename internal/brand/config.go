// Package brand holds the static per-brand presentation configuration:
// display names, color schemes, typography and asset locations consumed by
// brand-themed frontends. The tables are immutable lookup data, loaded once.
package brand

import "github.com/aistocktrack/catalog-service/internal/types"

// ColorScheme holds the CSS color variables for a brand theme
type ColorScheme struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Background    string `json:"background"`
	Text          string `json:"text"`
	TextSecondary string `json:"text_secondary"`
	Success       string `json:"success"`
	Warning       string `json:"warning"`
	Error         string `json:"error"`
}

// Typography holds the font configuration for a brand theme
type Typography struct {
	FontFamilyPrimary   string `json:"font_family_primary"`
	FontFamilySecondary string `json:"font_family_secondary"`
	FontSizeBase        string `json:"font_size_base"`
	FontSizeLarge       string `json:"font_size_large"`
	FontSizeSmall       string `json:"font_size_small"`
	LineHeight          string `json:"line_height"`
}

// Assets holds brand asset URLs
type Assets struct {
	LogoURL           string `json:"logo_url"`
	FaviconURL        string `json:"favicon_url"`
	BackgroundPattern string `json:"background_pattern,omitempty"`
	HeroImage         string `json:"hero_image,omitempty"`
	PlaceholderImage  string `json:"placeholder_image"`
}

// Config is the complete presentation configuration for one brand
type Config struct {
	BrandType       types.BrandType   `json:"brand_type"`
	DisplayName     string            `json:"display_name"`
	Tagline         string            `json:"tagline"`
	Colors          ColorScheme       `json:"colors"`
	Typography      Typography        `json:"typography"`
	Assets          Assets            `json:"assets"`
	ProductTerm     string            `json:"product_term"` // "figure", "card"
	CategoryLabels  map[string]string `json:"category_labels"`
	GridColumns     int               `json:"grid_columns"`
	MetaDescription string            `json:"meta_description"`
	MetaKeywords    []string          `json:"meta_keywords"`
}

var popMartConfig = Config{
	BrandType:   types.BrandPopMart,
	DisplayName: "Pop Mart Tracker",
	Tagline:     "Stay updated with the latest Pop Mart releases and restocks",
	Colors: ColorScheme{
		Primary:       "#FF6B9D",
		Secondary:     "#4ECDC4",
		Accent:        "#FFE66D",
		Background:    "#FFFFFF",
		Text:          "#2D3436",
		TextSecondary: "#636E72",
		Success:       "#10B981",
		Warning:       "#F59E0B",
		Error:         "#EF4444",
	},
	Typography: Typography{
		FontFamilyPrimary:   "'Inter', 'Helvetica Neue', sans-serif",
		FontFamilySecondary: "'Poppins', 'Inter', sans-serif",
		FontSizeBase:        "16px",
		FontSizeLarge:       "24px",
		FontSizeSmall:       "14px",
		LineHeight:          "1.5",
	},
	Assets: Assets{
		LogoURL:           "/static/images/popmart-logo.png",
		FaviconURL:        "/static/images/popmart-favicon.ico",
		BackgroundPattern: "/static/images/popmart-pattern.svg",
		HeroImage:         "/static/images/popmart-hero.jpg",
		PlaceholderImage:  "/static/images/placeholder.jpg",
	},
	ProductTerm: "figure",
	CategoryLabels: map[string]string{
		"blind_box": "Blind Box Series",
		"mega":      "Mega Collection",
		"diy":       "DIY Series",
		"plush":     "Plush Collection",
	},
	GridColumns:     4,
	MetaDescription: "Track Pop Mart figure availability, prices, and restocks across multiple retailers",
	MetaKeywords:    []string{"pop mart", "blind box", "figures", "collectibles", "stock tracker"},
}

var pokemonConfig = Config{
	BrandType:   types.BrandPokemon,
	DisplayName: "Pokémon Card Tracker",
	Tagline:     "Catch the best deals on Pokémon trading cards",
	Colors: ColorScheme{
		Primary:       "#FFCB05",
		Secondary:     "#3B4CCA",
		Accent:        "#FF0000",
		Background:    "#F8F9FA",
		Text:          "#212529",
		TextSecondary: "#6C757D",
		Success:       "#10B981",
		Warning:       "#F59E0B",
		Error:         "#EF4444",
	},
	Typography: Typography{
		FontFamilyPrimary:   "'Roboto', 'Arial', sans-serif",
		FontFamilySecondary: "'Roboto Condensed', 'Roboto', sans-serif",
		FontSizeBase:        "16px",
		FontSizeLarge:       "24px",
		FontSizeSmall:       "14px",
		LineHeight:          "1.5",
	},
	Assets: Assets{
		LogoURL:           "/static/images/pokemon-logo.png",
		FaviconURL:        "/static/images/pokemon-favicon.ico",
		BackgroundPattern: "/static/images/pokemon-pattern.svg",
		HeroImage:         "/static/images/pokemon-hero.jpg",
		PlaceholderImage:  "/static/images/placeholder.jpg",
	},
	ProductTerm: "card",
	CategoryLabels: map[string]string{
		"booster": "Booster Packs",
		"box":     "Booster Boxes",
		"deck":    "Theme Decks",
		"tin":     "Collector Tins",
		"single":  "Single Cards",
	},
	GridColumns:     3,
	MetaDescription: "Track Pokémon trading card prices, availability, and deals from top retailers",
	MetaKeywords:    []string{"pokemon", "trading cards", "booster packs", "tcg", "price tracker"},
}

var configs = map[types.BrandType]Config{
	types.BrandPopMart: popMartConfig,
	types.BrandPokemon: pokemonConfig,
}

// Get returns the presentation config for a brand. Unknown brands fall back
// to the Pop Mart config.
func Get(brandType types.BrandType) Config {
	if cfg, ok := configs[brandType]; ok {
		return cfg
	}
	return popMartConfig
}

// All returns the configs of every supported brand, keyed by brand type
func All() map[types.BrandType]Config {
	out := make(map[types.BrandType]Config, len(configs))
	for k, v := range configs {
		out[k] = v
	}
	return out
}
