package browser

import (
	"fmt"

	"github.com/dop251/goja"
)

// stealthScript runs before any page script on every document. It papers
// over the headless tells automation detectors probe for.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
Object.defineProperty(navigator, 'plugins', {
	get: () => [
		{ name: 'Chrome PDF Plugin' },
		{ name: 'Chrome PDF Viewer' },
		{ name: 'Native Client' }
	]
});
window.chrome = window.chrome || { runtime: {} };
const origQuery = window.navigator.permissions.query;
window.navigator.permissions.query = (parameters) => (
	parameters.name === 'notifications'
		? Promise.resolve({ state: Notification.permission })
		: origQuery(parameters)
);
`

// checkStealthScript compiles the evasion script without running it, so a
// syntax slip fails session startup instead of silently leaving every page
// unmasked.
func checkStealthScript() error {
	if _, err := goja.Compile("stealth.js", stealthScript, true); err != nil {
		return fmt.Errorf("stealth script does not compile: %w", err)
	}
	return nil
}
