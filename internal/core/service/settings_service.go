package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
	"github.com/exchangeaddons/paypal-pro/internal/core/ports"
	"github.com/exchangeaddons/paypal-pro/internal/telemetry"
)

// SettingsNonceAction scopes the settings form nonce.
const SettingsNonceAction = "it-exchange-paypal_pro-settings"

// SettingsNonceField is the posted field carrying the settings form nonce.
const SettingsNonceField = "_wpnonce"

// Settings page messages.
const (
	MsgSettingsSaved        = "Settings Saved."
	MsgSettingsNotSaved     = "Settings not saved."
	MsgSettingsInvalidToken = "Error. Please try again"
)

// RenderContext describes which surface is being rendered.
type RenderContext struct {
	// Wizard renders the condensed fragment for the setup wizard.
	Wizard bool
	// AddonEnabled is set when the wizard's checkbox for this add-on is ticked.
	AddonEnabled  bool
	StatusMessage string
	ErrorMessage  string
	// Settings, when set, is rendered instead of the stored record.
	Settings *domain.GatewaySettings
}

// SubmitRequest is one post of the admin settings form.
type SubmitRequest struct {
	Nonce  string
	Fields map[string]string
}

// SubmitResult reports what Submit did, for the page render that follows.
// Settings holds the posted values merged over the stored record; it is nil
// when the post was rejected before merging.
type SubmitResult struct {
	Saved         bool
	StatusMessage string
	ErrorMessage  string
	Settings      *domain.GatewaySettings
	Err           error
}

// RenderContext returns the render context that shows this result's messages.
// A failed save keeps the values the merchant typed on the page.
func (r SubmitResult) RenderContext() RenderContext {
	rc := RenderContext{StatusMessage: r.StatusMessage, ErrorMessage: r.ErrorMessage}
	if !r.Saved {
		rc.Settings = r.Settings
	}
	return rc
}

// SettingsService owns the PayPal Pro settings record.
type SettingsService struct {
	store  ports.OptionsStore
	nonces ports.NonceService
	form   ports.SettingsForm
	logger *zap.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(store ports.OptionsStore, nonces ports.NonceService, form ports.SettingsForm, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		store:  store,
		nonces: nonces,
		form:   form,
		logger: logger,
	}
}

// Defaults returns the settings used when no record is stored.
func (s *SettingsService) Defaults() domain.GatewaySettings {
	return domain.DefaultSettings()
}

// Load returns the stored settings merged over the defaults.
func (s *SettingsService) Load(ctx context.Context) (domain.GatewaySettings, error) {
	settings := s.Defaults()

	raw, err := s.store.Get(ctx, domain.SettingsOptionKey)
	if errors.Is(err, domain.ErrOptionNotFound) {
		return settings, nil
	}
	if err != nil {
		return settings, domain.NewServiceError(domain.ErrStorageFailure,
			"failed to load settings: "+err.Error(), "SETTINGS_LOAD_ERROR")
	}

	if err := json.Unmarshal(raw, &settings); err != nil {
		return s.Defaults(), domain.NewServiceError(domain.ErrStorageFailure,
			"failed to decode settings: "+err.Error(), "SETTINGS_DECODE_ERROR")
	}

	return settings.WithDefaults(), nil
}

// Validate checks the required credential fields.
func (s *SettingsService) Validate(values map[string]string) domain.FormErrors {
	return domain.Validate(values)
}

// Render returns the settings page, or the wizard fragment when rc.Wizard is set.
func (s *SettingsService) Render(ctx context.Context, rc RenderContext) (string, error) {
	var settings domain.GatewaySettings
	if rc.Settings != nil {
		settings = *rc.Settings
	} else {
		var err error
		settings, err = s.Load(ctx)
		if err != nil {
			// Render with defaults so the merchant can still re-enter credentials.
			s.logger.Error("Failed to load settings for render", zap.Error(err))
		}
	}

	view := domain.SettingsView{
		Settings:      settings,
		Nonce:         s.nonces.Issue(SettingsNonceAction),
		NonceField:    SettingsNonceField,
		StatusMessage: rc.StatusMessage,
		ErrorMessage:  rc.ErrorMessage,
		AddonEnabled:  rc.AddonEnabled,
	}

	if rc.Wizard {
		return s.form.RenderWizard(view)
	}
	return s.form.RenderPage(view)
}

// Submit verifies, validates and persists one post of the settings form.
func (s *SettingsService) Submit(ctx context.Context, req SubmitRequest) SubmitResult {
	if !s.nonces.Verify(req.Nonce, SettingsNonceAction) {
		err := domain.NewServiceError(domain.ErrSecurityTokenInvalid, "settings form nonce rejected", "INVALID_NONCE")
		s.logger.Warn("Settings form security token rejected", zap.Error(err))
		telemetry.ObserveSettingsSave("form", telemetry.SaveInvalidToken)
		return SubmitResult{ErrorMessage: MsgSettingsInvalidToken, Err: err}
	}

	merged, errs, err := s.mergeAndValidate(ctx, req.Fields)
	if err != nil {
		telemetry.ObserveSettingsSave("form", telemetry.SaveStorageError)
		return SubmitResult{ErrorMessage: MsgSettingsNotSaved, Err: err}
	}
	if !errs.Valid() {
		err := s.validationError("form", errs)
		return SubmitResult{ErrorMessage: errs.Join(), Settings: &merged, Err: err}
	}

	if err := s.save(ctx, merged); err != nil {
		telemetry.ObserveSettingsSave("form", telemetry.SaveStorageError)
		return SubmitResult{ErrorMessage: MsgSettingsNotSaved, Settings: &merged, Err: err}
	}

	telemetry.ObserveSettingsSave("form", telemetry.SaveSaved)
	return SubmitResult{Saved: true, StatusMessage: MsgSettingsSaved, Settings: &merged}
}

// SubmitWizard saves the settings posted from the setup wizard.
// It returns false when the wizard was not submitted, in which case nothing
// is read or written. Validation errors are returned for the wizard to show.
func (s *SettingsService) SubmitWizard(ctx context.Context, fields map[string]string) (domain.FormErrors, bool) {
	if fields[domain.WizardSubmittedField] == "" {
		return nil, false
	}

	posted := make(map[string]string, len(domain.SettingsFields))
	for _, field := range domain.SettingsFields {
		if v, ok := fields[domain.WizardFieldPrefix+field]; ok {
			posted[field] = v
		}
	}

	merged, errs, err := s.mergeAndValidate(ctx, posted)
	if err != nil {
		telemetry.ObserveSettingsSave("wizard", telemetry.SaveStorageError)
		return domain.FormErrors{MsgSettingsNotSaved}, true
	}
	if !errs.Valid() {
		s.validationError("wizard", errs)
		return errs, true
	}

	if err := s.save(ctx, merged); err != nil {
		telemetry.ObserveSettingsSave("wizard", telemetry.SaveStorageError)
		return domain.FormErrors{MsgSettingsNotSaved}, true
	}

	telemetry.ObserveSettingsSave("wizard", telemetry.SaveSaved)
	return domain.FormErrors{}, true
}

func (s *SettingsService) mergeAndValidate(ctx context.Context, posted map[string]string) (domain.GatewaySettings, domain.FormErrors, error) {
	current, err := s.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load settings before save", zap.Error(err))
		return current, nil, err
	}

	merged := current.Merge(posted)
	return merged, s.Validate(merged.Values()), nil
}

func (s *SettingsService) validationError(surface string, errs domain.FormErrors) error {
	err := domain.NewServiceError(domain.ErrValidationFailure, errs.Join(), "VALIDATION_ERROR")
	s.logger.Info("Settings rejected by validation", zap.String("surface", surface), zap.Error(err))
	telemetry.ObserveSettingsSave(surface, telemetry.SaveInvalid)
	return err
}

func (s *SettingsService) save(ctx context.Context, settings domain.GatewaySettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		s.logger.Error("Failed to encode settings", zap.Error(err))
		return domain.NewServiceError(domain.ErrStorageFailure, "failed to encode settings", "SETTINGS_ENCODE_ERROR")
	}

	if err := s.store.Set(ctx, domain.SettingsOptionKey, raw); err != nil {
		s.logger.Error("Failed to save settings", zap.Error(err))
		return domain.NewServiceError(domain.ErrStorageFailure, "failed to save settings: "+err.Error(), "SETTINGS_SAVE_ERROR")
	}

	s.logger.Info("PayPal Pro settings saved", zap.Bool("sandbox_mode", settings.SandboxMode))
	return nil
}
