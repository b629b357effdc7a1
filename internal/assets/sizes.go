package assets

import (
	"fmt"

	"github.com/goalline/sportscache/internal/domain"
	"github.com/goalline/sportscache/internal/media/transformer"
)

// DefaultVariant is the size served when callers don't ask for one
const DefaultVariant = "md"

// defaultSpecs are the square bounding boxes for headshots and crests
var defaultSpecs = []transformer.VariantSpec{
	{Name: "sm", MaxWidth: 40, MaxHeight: 40},
	{Name: "md", MaxWidth: 100, MaxHeight: 100},
	{Name: "lg", MaxWidth: 300, MaxHeight: 300},
}

// venueSpecs are wider boxes for stadium photography
var venueSpecs = []transformer.VariantSpec{
	{Name: "sm", MaxWidth: 200, MaxHeight: 150},
	{Name: "md", MaxWidth: 400, MaxHeight: 300},
	{Name: "lg", MaxWidth: 800, MaxHeight: 600},
}

// SpecsFor returns the variant table for an asset kind
func SpecsFor(kind domain.AssetKind) []transformer.VariantSpec {
	if kind == domain.AssetKindVenuePhoto {
		return venueSpecs
	}
	return defaultSpecs
}

// FormatFor returns the output encoding for an asset kind. Crests keep their
// transparency as PNG; photographic kinds compress better as JPEG.
func FormatFor(kind domain.AssetKind) transformer.Format {
	switch kind {
	case domain.AssetKindTeamLogo, domain.AssetKindLeagueLogo:
		return transformer.FormatPNG
	}
	return transformer.FormatJPEG
}

// VariantPath returns the storage path of one variant of an asset
func VariantPath(kind domain.AssetKind, entityID int64, variant string) string {
	return fmt.Sprintf("%s/%s/%d.%s", kind, variant, entityID, FormatFor(kind).Ext())
}
