// Package paypalpro implements the PaymentGateway port against the PayPal
// Payments Pro NVP API (DoDirectPayment).
package paypalpro

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
	"github.com/exchangeaddons/paypal-pro/internal/core/ports"
)

// Default NVP endpoints.
const (
	LiveEndpoint    = "https://api-3t.paypal.com/nvp"
	SandboxEndpoint = "https://api-3t.sandbox.paypal.com/nvp"
	DefaultVersion  = "98.0"
)

const defaultIPAddress = "127.0.0.1"

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	LiveEndpoint    string
	SandboxEndpoint string
	Version         string
	Timeout         time.Duration
}

// Client charges cards with DoDirectPayment. Credentials and the sandbox
// switch are read from the settings record on every call.
type Client struct {
	settings        ports.SettingsLoader
	liveEndpoint    string
	sandboxEndpoint string
	version         string
	httpClient      *http.Client
}

// NewClient creates a new PayPal Pro client.
func NewClient(settings ports.SettingsLoader, opts Options) *Client {
	if opts.LiveEndpoint == "" {
		opts.LiveEndpoint = LiveEndpoint
	}
	if opts.SandboxEndpoint == "" {
		opts.SandboxEndpoint = SandboxEndpoint
	}
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	return &Client{
		settings:        settings,
		liveEndpoint:    opts.LiveEndpoint,
		sandboxEndpoint: opts.SandboxEndpoint,
		version:         opts.Version,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// DoPayment submits a Sale for the cart total.
// extra may carry "ip_address" for the shopper's IP.
func (c *Client) DoPayment(ctx context.Context, customer domain.Customer, cart domain.CartContents, extra map[string]string) (*domain.PaymentResult, error) {
	settings, err := c.settings.Load(ctx)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrGatewayFailure,
			"Unable to load PayPal Pro settings", "SETTINGS_ERROR")
	}
	if settings.APIUsername == "" || settings.APIPassword == "" || settings.APISignature == "" {
		return nil, domain.NewServiceError(domain.ErrGatewayFailure,
			"PayPal Pro is not configured", "NOT_CONFIGURED")
	}

	endpoint := c.liveEndpoint
	if settings.SandboxMode {
		endpoint = c.sandboxEndpoint
	}

	form := c.buildRequest(settings, customer, cart, extra)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrGatewayFailure,
			"Unable to create PayPal Pro request", "REQUEST_ERROR")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrGatewayFailure,
			"Unable to reach PayPal Pro: "+err.Error(), "HTTP_ERROR")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrGatewayFailure,
			"Unable to read PayPal Pro response", "READ_ERROR")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewServiceError(domain.ErrGatewayFailure,
			fmt.Sprintf("PayPal Pro returned status %d", resp.StatusCode), "PAYPAL_HTTP_STATUS")
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, domain.NewServiceError(domain.ErrGatewayFailure,
			"Unable to parse PayPal Pro response", "DECODE_ERROR")
	}

	return parseResponse(values)
}

// buildRequest assembles the DoDirectPayment NVP fields.
func (c *Client) buildRequest(settings domain.GatewaySettings, customer domain.Customer, cart domain.CartContents, extra map[string]string) url.Values {
	currency := cart.Currency
	if currency == "" {
		currency = "USD"
	}
	ip := extra["ip_address"]
	if ip == "" {
		ip = defaultIPAddress
	}
	firstName, lastName := cart.Card.FirstName, cart.Card.LastName
	if firstName == "" {
		firstName = customer.FirstName
	}
	if lastName == "" {
		lastName = customer.LastName
	}

	form := url.Values{}
	form.Set("USER", settings.APIUsername)
	form.Set("PWD", settings.APIPassword)
	form.Set("SIGNATURE", settings.APISignature)
	form.Set("VERSION", c.version)
	form.Set("METHOD", "DoDirectPayment")
	form.Set("PAYMENTACTION", "Sale")
	form.Set("IPADDRESS", ip)
	form.Set("AMT", fmt.Sprintf("%.2f", cart.Total))
	form.Set("CURRENCYCODE", currency)
	form.Set("CREDITCARDTYPE", cardType(cart.Card.Number))
	form.Set("ACCT", cart.Card.Number)
	form.Set("EXPDATE", expiry(cart.Card.ExpiryMonth, cart.Card.ExpiryYear))
	form.Set("CVV2", cart.Card.CVV)
	form.Set("FIRSTNAME", firstName)
	form.Set("LASTNAME", lastName)
	form.Set("EMAIL", customer.Email)
	form.Set("CUSTOM", customer.ID)
	if cart.Description != "" {
		form.Set("DESC", cart.Description)
	}

	optional := map[string]string{
		"STREET":      cart.Card.Street,
		"CITY":        cart.Card.City,
		"STATE":       cart.Card.State,
		"ZIP":         cart.Card.Zip,
		"COUNTRYCODE": cart.Card.CountryCode,
	}
	for key, value := range optional {
		if value != "" {
			form.Set(key, value)
		}
	}

	return form
}

// parseResponse turns an NVP reply into a result or a gateway error.
func parseResponse(values url.Values) (*domain.PaymentResult, error) {
	switch values.Get("ACK") {
	case "Success", "SuccessWithWarning":
		id := values.Get("TRANSACTIONID")
		if id == "" {
			return nil, domain.NewServiceError(domain.ErrGatewayFailure,
				"PayPal Pro did not return a transaction id", "MISSING_TRANSACTION_ID")
		}
		return &domain.PaymentResult{ID: id, Success: true}, nil
	}

	message := values.Get("L_LONGMESSAGE0")
	if message == "" {
		message = values.Get("L_SHORTMESSAGE0")
	}
	if message == "" {
		message = "PayPal Pro declined the transaction"
	}
	code := values.Get("L_ERRORCODE0")
	if code == "" {
		code = "PAYPAL_DECLINED"
	}

	return nil, domain.NewServiceError(domain.ErrGatewayFailure, message, code)
}

// cardType guesses the CREDITCARDTYPE from the card number prefix.
func cardType(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "Visa"
	case strings.HasPrefix(number, "34"), strings.HasPrefix(number, "37"):
		return "Amex"
	case strings.HasPrefix(number, "5"), strings.HasPrefix(number, "2"):
		return "MasterCard"
	case strings.HasPrefix(number, "6"):
		return "Discover"
	default:
		return ""
	}
}

// expiry formats month and year as MMYYYY.
func expiry(month, year string) string {
	if len(month) == 1 {
		month = "0" + month
	}
	if len(year) == 2 {
		year = "20" + year
	}
	return month + year
}
