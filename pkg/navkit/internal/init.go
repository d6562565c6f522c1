// Package internal holds infrastructure shared by the navkit packages:
// logging, locale bundles and the trust store used by outbound HTTP clients.
// Types and functions in this package are not part of the public API.
package internal

import _ "github.com/BrandonKowalski/certifiable" // Add CA certificates to the default trust store
