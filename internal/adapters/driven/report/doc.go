// Package report renders the standalone HTML metrics report.
//
// The document embeds the session and event collections as JSON literals
// and redraws both charts client side, so it can be opened offline.
package report
