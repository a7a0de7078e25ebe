// Package labels defines the label conventions the controllers apply to
// child resources they own.
package labels

// NameKey is the label key applied to runner pods and used as the
// corresponding Service selector.
const NameKey = "kubimo.aqora.io/name"

// Name returns the singleton label set identifying the Pod (and Service
// selector) belonging to the named Runner.
func Name(name string) map[string]string {
	return map[string]string{NameKey: name}
}
