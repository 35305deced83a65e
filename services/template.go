package services

import (
	"time"

	"github.com/osteele/liquid"
)

// brandShell is the fixed branded layout for outgoing mail and the compose
// preview. The body HTML is injected verbatim into the content region; the
// admin is the only author, so no sanitization is applied. Liquid does not
// escape output, which is what keeps the passthrough byte-exact.
const brandShell = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{ subject }}</title>
    <style>
        @import url('https://fonts.googleapis.com/css2?family=Montserrat:wght@400;700&display=swap');
        body { font-family: 'Montserrat', sans-serif; margin: 0; padding: 0; background-color: #f8fafc; }
        .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
        .header { background-color: #ffffff; padding: 20px; text-align: center; border-bottom: 3px solid #006633; }
        .logo-text { color: #006633; font-size: 24px; font-weight: bold; text-decoration: none; }
        .logo-sub { color: #666; font-size: 12px; text-transform: uppercase; letter-spacing: 2px; display: block; margin-top: 5px; }
        .content { padding: 40px 30px; color: #333333; line-height: 1.6; }
        .footer { background-color: #1a1a1a; color: #888888; padding: 30px; text-align: center; font-size: 12px; }
        .footer a { color: #EF3A05; text-decoration: none; }
        img { max-width: 100%; height: auto; display: block; margin: 10px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo-text">DeEXCLUSIVES</div>
            <span class="logo-sub">Music Organization</span>
        </div>
        <div class="content">
            {{ content }}
        </div>
        <div class="footer">
            <p>&copy; {{ year }} DeExclusives Music Organization. All rights reserved.</p>
            <p>Empowering African Youth through Music and Education.</p>
        </div>
    </div>
</body>
</html>
`

// BrandTemplate wraps arbitrary body HTML in the brand shell. The template is
// parsed once and shared; rendering is deterministic apart from the copyright
// year.
type BrandTemplate struct {
	tmpl *liquid.Template
}

// NewBrandTemplate parses the brand shell.
func NewBrandTemplate() (*BrandTemplate, error) {
	engine := liquid.NewEngine()
	tmpl, err := engine.ParseString(brandShell)
	if err != nil {
		return nil, err
	}
	return &BrandTemplate{tmpl: tmpl}, nil
}

// Wrap returns a complete HTML document with the body injected into the
// content region. The subject only fills the document title. Both the outgoing
// send and the in-app preview go through this one render path, so the preview
// matches what recipients see byte for byte.
func (b *BrandTemplate) Wrap(bodyHTML, subject string) (string, error) {
	return b.tmpl.RenderString(liquid.Bindings{
		"content": bodyHTML,
		"subject": subject,
		"year":    time.Now().Year(),
	})
}
