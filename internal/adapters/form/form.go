// Package form renders the add-on's HTML: the admin settings page, the setup
// wizard fragment and the checkout purchase dialog.
package form

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
	"github.com/exchangeaddons/paypal-pro/internal/core/ports"
)

var templates = template.Must(template.New("paypal_pro").
	Funcs(template.FuncMap{
		"lines": func(s string) []string { return strings.Split(s, "\n") },
	}).
	Parse(fieldsTemplate + pageTemplate + wizardTemplate + dialogTemplate))

type fieldsData struct {
	Prefix string
	View   domain.SettingsView
}

// SettingsForm implements ports.SettingsForm.
type SettingsForm struct{}

// NewSettingsForm creates the settings form renderer.
func NewSettingsForm() *SettingsForm {
	return &SettingsForm{}
}

// RenderPage renders the full admin settings page.
func (f *SettingsForm) RenderPage(view domain.SettingsView) (string, error) {
	return execute("page", fieldsData{View: view})
}

// RenderWizard renders the fields under the wizard's field name prefix.
func (f *SettingsForm) RenderWizard(view domain.SettingsView) (string, error) {
	return execute("wizard", fieldsData{Prefix: domain.WizardFieldPrefix, View: view})
}

// PurchaseDialog implements ports.PurchaseDialog.
type PurchaseDialog struct {
	nonces   ports.NonceService
	settings ports.SettingsLoader
}

// NewPurchaseDialog creates the checkout dialog renderer.
func NewPurchaseDialog(nonces ports.NonceService, settings ports.SettingsLoader) *PurchaseDialog {
	return &PurchaseDialog{nonces: nonces, settings: settings}
}

type dialogData struct {
	Method     string
	Label      string
	Nonce      string
	NonceField string
}

// Render returns the purchase dialog for method, labelled from the settings.
func (d *PurchaseDialog) Render(ctx context.Context, method string) (string, error) {
	settings, err := d.settings.Load(ctx)
	if err != nil {
		return "", err
	}

	return execute("dialog", dialogData{
		Method:     method,
		Label:      settings.WithDefaults().PurchaseButtonLabel,
		Nonce:      d.nonces.Issue(domain.CheckoutNonceAction),
		NonceField: domain.CheckoutNonceField,
	})
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
