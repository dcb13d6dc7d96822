// Package remote talks to the public Elite Dangerous community services.
//
// EDSM answers which stations in a system have a market and what a market
// buys; Inara's global search resolves web links for commodities and
// stations. Directory wraps both behind process-lifetime lookup caches.
package remote
