package domain

import "strings"

// SettingsOptionKey is the options store key holding the settings record.
const SettingsOptionKey = "addon_paypal_pro"

// Form and storage keys of the five settings fields.
const (
	FieldAPIUsername         = "paypal_pro_api_username"
	FieldAPIPassword         = "paypal_pro_api_password"
	FieldAPISignature        = "paypal_pro_api_signature"
	FieldSandboxMode         = "paypal_pro_sandbox_mode"
	FieldPurchaseButtonLabel = "paypal_pro_purchase_button_label"
)

// SettingsFields lists every settings field in display order.
var SettingsFields = []string{
	FieldAPIUsername,
	FieldAPIPassword,
	FieldAPISignature,
	FieldSandboxMode,
	FieldPurchaseButtonLabel,
}

// Setup wizard field conventions.
const (
	WizardFieldPrefix    = "it_exchange_settings-"
	WizardSubmittedField = "it_exchange_settings-wizard-submitted"
)

// DefaultPurchaseButtonLabel is used until the merchant sets a label.
const DefaultPurchaseButtonLabel = "Purchase"

// Validation messages, one per required field.
const (
	MsgMissingAPIUsername  = "Please include your PayPal Pro API Username"
	MsgMissingAPIPassword  = "Please include your PayPal Pro API Password"
	MsgMissingAPISignature = "Please include your PayPal Pro API Signature"
)

// GatewaySettings is the merchant's PayPal Pro configuration.
type GatewaySettings struct {
	APIUsername         string `json:"paypal_pro_api_username"`
	APIPassword         string `json:"paypal_pro_api_password"`
	APISignature        string `json:"paypal_pro_api_signature"`
	SandboxMode         bool   `json:"paypal_pro_sandbox_mode"`
	PurchaseButtonLabel string `json:"paypal_pro_purchase_button_label"`
}

// DefaultSettings returns the record used when nothing has been saved yet.
func DefaultSettings() GatewaySettings {
	return GatewaySettings{
		SandboxMode:         false,
		PurchaseButtonLabel: DefaultPurchaseButtonLabel,
	}
}

// FormErrors is an ordered list of validation messages. Empty means valid.
type FormErrors []string

// Valid reports whether no validation messages were collected.
func (e FormErrors) Valid() bool {
	return len(e) == 0
}

// Join returns the messages one per line.
func (e FormErrors) Join() string {
	return strings.Join(e, "\n")
}

// Values flattens the settings into form field values.
func (s GatewaySettings) Values() map[string]string {
	sandbox := ""
	if s.SandboxMode {
		sandbox = "1"
	}
	return map[string]string{
		FieldAPIUsername:         s.APIUsername,
		FieldAPIPassword:         s.APIPassword,
		FieldAPISignature:        s.APISignature,
		FieldSandboxMode:         sandbox,
		FieldPurchaseButtonLabel: s.PurchaseButtonLabel,
	}
}

// Merge overlays posted values on s. Fields absent from posted keep their current value.
func (s GatewaySettings) Merge(posted map[string]string) GatewaySettings {
	merged := s
	if v, ok := posted[FieldAPIUsername]; ok {
		merged.APIUsername = v
	}
	if v, ok := posted[FieldAPIPassword]; ok {
		merged.APIPassword = v
	}
	if v, ok := posted[FieldAPISignature]; ok {
		merged.APISignature = v
	}
	if v, ok := posted[FieldSandboxMode]; ok {
		merged.SandboxMode = parseFlag(v)
	}
	if v, ok := posted[FieldPurchaseButtonLabel]; ok {
		merged.PurchaseButtonLabel = v
	}
	return merged
}

// WithDefaults fills optional fields left empty by an older stored record.
func (s GatewaySettings) WithDefaults() GatewaySettings {
	if s.PurchaseButtonLabel == "" {
		s.PurchaseButtonLabel = DefaultPurchaseButtonLabel
	}
	return s
}

// Validate checks the three required credential fields.
// Sandbox mode and the button label are never validated.
func Validate(values map[string]string) FormErrors {
	errs := FormErrors{}
	if values[FieldAPIUsername] == "" {
		errs = append(errs, MsgMissingAPIUsername)
	}
	if values[FieldAPIPassword] == "" {
		errs = append(errs, MsgMissingAPIPassword)
	}
	if values[FieldAPISignature] == "" {
		errs = append(errs, MsgMissingAPISignature)
	}
	return errs
}

func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "on", "yes", "true":
		return true
	default:
		return false
	}
}

// SettingsView is what the settings form renderer needs for one page.
type SettingsView struct {
	Settings      GatewaySettings
	Nonce         string
	NonceField    string
	StatusMessage string
	ErrorMessage  string
	// AddonEnabled marks the wizard fragment as active for this method.
	AddonEnabled bool
}
