package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"contentdash/internal/config"
	"contentdash/internal/middleware"
)

// BrandingData contains site branding information for templates.
type BrandingData struct {
	BrandName string
	Year      int
}

// GetBrandingData returns branding data from config for template rendering.
func GetBrandingData(cfg *config.Config) BrandingData {
	return BrandingData{
		BrandName: cfg.BrandName,
		Year:      time.Now().Year(),
	}
}

// MergeBranding adds branding and sign-in state to a fiber.Map for
// template rendering.
func MergeBranding(c fiber.Ctx, data fiber.Map, cfg *config.Config) fiber.Map {
	branding := GetBrandingData(cfg)
	data["BrandName"] = branding.BrandName
	data["Year"] = branding.Year
	data["SignedIn"] = middleware.SignedIn(c)
	if session, ok := middleware.SessionFrom(c); ok {
		data["SessionEmail"] = session.Email
	}
	return data
}
