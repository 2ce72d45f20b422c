package render

import "strings"

// Challenge describes an anti-bot page returned instead of real content.
type Challenge string

const (
	ChallengeNone       Challenge = ""
	ChallengeCloudflare Challenge = "cloudflare"
	ChallengeCaptcha    Challenge = "captcha"
	ChallengeJSShell    Challenge = "js_shell"
)

// jsShellMaxLen bounds the size of a page that is only a JavaScript stub.
const jsShellMaxLen = 2000

// DetectChallenge inspects rendered HTML or Markdown for signs that the
// remote browser was served a bot check rather than the page itself.
func DetectChallenge(body string) Challenge {
	lower := strings.ToLower(body)

	if strings.Contains(lower, "checking your browser") ||
		strings.Contains(lower, "cf-browser-verification") ||
		strings.Contains(lower, "cf-challenge") ||
		strings.Contains(lower, "just a moment") && strings.Contains(lower, "cloudflare") {
		return ChallengeCloudflare
	}

	if strings.Contains(lower, "g-recaptcha") ||
		strings.Contains(lower, "h-captcha") ||
		strings.Contains(lower, "captcha") && strings.Contains(lower, "verify") {
		return ChallengeCaptcha
	}

	if len(body) < jsShellMaxLen {
		if strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript") {
			return ChallengeJSShell
		}
		if strings.Contains(lower, `http-equiv="refresh"`) {
			return ChallengeJSShell
		}
	}

	return ChallengeNone
}

// Warning is the console message for a detected challenge.
func (c Challenge) Warning() string {
	switch c {
	case ChallengeCloudflare:
		return "Warning: the page served a Cloudflare browser check; the result may not be the real content."
	case ChallengeCaptcha:
		return "Warning: the page asked for a captcha; the result may not be the real content."
	case ChallengeJSShell:
		return "Warning: the page is a JavaScript stub; the result may be incomplete."
	default:
		return ""
	}
}
