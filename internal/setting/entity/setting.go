package entity

import "time"

// SiteSetting is one storefront display value, usually an emoji or an image URL.
type SiteSetting struct {
	ID          int64     `db:"id" json:"id"`
	Key         string    `db:"setting_key" json:"setting_key"`
	Value       string    `db:"setting_value" json:"setting_value"`
	Description *string   `db:"description" json:"description"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Defaults are seeded on first boot. The key set is fixed.
var Defaults = []SiteSetting{
	{Key: "hero_emoji", Value: "👕", Description: ptr("Hero section t-shirt emoji")},
	{Key: "classic_white_emoji", Value: "👕", Description: ptr("Classic White product emoji")},
	{Key: "color_bold_emoji", Value: "🎨", Description: ptr("Color Bold product emoji")},
	{Key: "premium_comfort_emoji", Value: "✨", Description: ptr("Premium Comfort product emoji")},
	{Key: "signature_edition_emoji", Value: "🌟", Description: ptr("Signature Edition product emoji")},
	{Key: "shipping_icon", Value: "🚚", Description: ptr("Shipping feature icon")},
	{Key: "returns_icon", Value: "🔄", Description: ptr("Returns feature icon")},
	{Key: "support_icon", Value: "💬", Description: ptr("Support feature icon")},
}

func ptr(s string) *string { return &s }
