package app

import (
	"folio_app_echo/internal/contact"
	"folio_app_echo/internal/models"
)

// Command is one user interaction handled by Controller.Handle
type Command interface {
	command()
}

// Navigate switches the visible page. Param is the record id of detail pages.
type Navigate struct {
	Page  models.Page
	Param string
}

// ToggleDarkMode flips the theme and persists it
type ToggleDarkMode struct{}

// ToggleMobileMenu opens or closes the mobile menu
type ToggleMobileMenu struct{}

// SubmitContactForm validates the submitted fields
type SubmitContactForm struct {
	Fields contact.Fields
}

// SystemThemeChanged reports the system color scheme preference
type SystemThemeChanged struct {
	Dark bool
}

func (Navigate) command() {}
func (ToggleDarkMode) command() {}
func (ToggleMobileMenu) command() {}
func (SubmitContactForm) command() {}
func (SystemThemeChanged) command() {}
