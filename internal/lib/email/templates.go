package email

// Template names an email template under templates/emails/.
type Template string

const (
	// TemplateWelcome corresponds to templates/emails/welcome.html.
	TemplateWelcome Template = "welcome"
)
