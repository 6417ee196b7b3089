package catalog

import "munchmarket/models"

// PlaceholderImage is shown for vendors with no usable image at all.
const PlaceholderImage = "/assets/img/vendor-placeholder.png"

// ResolveDisplayImage picks the image for a vendor card. Precedence:
// business logo, legacy logo, profile image, first gallery photo,
// placeholder. Old records may only have the legacy fields populated.
func ResolveDisplayImage(v models.Vendor) string {
	switch {
	case v.BusinessLogo != "":
		return v.BusinessLogo
	case v.Logo != "":
		return v.Logo
	case v.ProfileImage != "":
		return v.ProfileImage
	case len(v.Photos) > 0 && v.Photos[0] != "":
		return v.Photos[0]
	}
	return PlaceholderImage
}
