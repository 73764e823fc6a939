package form

const fieldsTemplate = `{{define "fields"}}
<div class="it-exchange-paypal_pro-fields">
	<p>To get PayPal Pro set up for use with Exchange, you'll need to add the following information from your PayPal Pro account.</p>
	<div class="field">
		<label for="{{.Prefix}}paypal_pro_api_username">API Username</label>
		<input type="text" name="{{.Prefix}}paypal_pro_api_username" id="{{.Prefix}}paypal_pro_api_username" value="{{.View.Settings.APIUsername}}" />
	</div>
	<div class="field">
		<label for="{{.Prefix}}paypal_pro_api_password">API Password</label>
		<input type="password" name="{{.Prefix}}paypal_pro_api_password" id="{{.Prefix}}paypal_pro_api_password" value="{{.View.Settings.APIPassword}}" autocomplete="off" />
	</div>
	<div class="field">
		<label for="{{.Prefix}}paypal_pro_api_signature">API Signature</label>
		<input type="password" name="{{.Prefix}}paypal_pro_api_signature" id="{{.Prefix}}paypal_pro_api_signature" value="{{.View.Settings.APISignature}}" autocomplete="off" />
	</div>
	<div class="field">
		<input type="hidden" name="{{.Prefix}}paypal_pro_sandbox_mode" value="0" />
		<input type="checkbox" name="{{.Prefix}}paypal_pro_sandbox_mode" id="{{.Prefix}}paypal_pro_sandbox_mode" value="1"{{if .View.Settings.SandboxMode}} checked="checked"{{end}} />
		<label for="{{.Prefix}}paypal_pro_sandbox_mode">Enable PayPal Sandbox Mode</label>
	</div>
	<div class="field">
		<label for="{{.Prefix}}paypal_pro_purchase_button_label">Purchase Button Label</label>
		<input type="text" name="{{.Prefix}}paypal_pro_purchase_button_label" id="{{.Prefix}}paypal_pro_purchase_button_label" value="{{.View.Settings.PurchaseButtonLabel}}" />
	</div>
</div>
{{end}}`

const pageTemplate = `{{define "page"}}
<div class="wrap">
	<h2>PayPal Pro Settings</h2>
	{{with .View.StatusMessage}}<div class="notice notice-success">{{range lines .}}<p>{{.}}</p>{{end}}</div>{{end}}
	{{with .View.ErrorMessage}}<div class="notice notice-error">{{range lines .}}<p>{{.}}</p>{{end}}</div>{{end}}
	<form method="post" action="" class="it-exchange-paypal_pro-settings">
		<input type="hidden" name="{{.View.NonceField}}" value="{{.View.Nonce}}" />
		{{template "fields" .}}
		<p class="submit"><input type="submit" class="button button-primary" value="Save Changes" /></p>
	</form>
</div>
{{end}}`

const wizardTemplate = `{{define "wizard"}}
<div class="field paypal_pro-wizard{{if not .View.AddonEnabled}} hide-if-js{{end}}">
	{{if .View.AddonEnabled}}<input class="enable-paypal_pro" type="hidden" name="it-exchange-transaction-methods[]" value="paypal_pro" />{{end}}
	<h4>PayPal Pro</h4>
	{{template "fields" .}}
</div>
{{end}}`

const dialogTemplate = `{{define "dialog"}}
<form class="it-exchange-purchase-dialog it-exchange-purchase-dialog-{{.Method}}" method="post" action="">
	<input type="hidden" name="{{.NonceField}}" value="{{.Nonce}}" />
	<input type="hidden" name="it-exchange-transaction-method" value="{{.Method}}" />
	<div class="it-exchange-purchase-dialog-name">
		<input type="text" name="{{.Method}}_card_first_name" placeholder="First Name" />
		<input type="text" name="{{.Method}}_card_last_name" placeholder="Last Name" />
	</div>
	<div class="it-exchange-purchase-dialog-card">
		<input type="text" name="{{.Method}}_card_number" placeholder="Card Number" autocomplete="off" />
		<input type="text" name="{{.Method}}_card_expiration_month" placeholder="MM" size="2" />
		<input type="text" name="{{.Method}}_card_expiration_year" placeholder="YY" size="2" />
		<input type="text" name="{{.Method}}_card_code" placeholder="CVC" size="4" autocomplete="off" />
	</div>
	<input type="submit" class="it-exchange-purchase-dialog-submit" value="{{.Label}}" />
</form>
{{end}}`
