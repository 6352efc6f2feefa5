// Package tui implements the terminal user interface of the mess-manager
// client.
//
// It is built on Bubble Tea: a root router model owns the authentication
// pages (menu, login, register), and a separate main-loop model drives the
// authenticated screens (today's menu, suggestion review, feedback and
// record entry). Which screens are reachable depends on the role carried by
// the current credential snapshot.
package tui
