// Package dashboard holds the terminal-independent state of the dashboard:
// which tab is active, which refreshes a tab or a timer tick asks for, which
// response generation is current, the single-slot notification and the view
// models rendered from API payloads.
//
// Nothing in here talks to the API; the only I/O is ValidateUpload's stat of
// a local file. The ui package turns the Refresh values produced here into
// API calls and projects the view models onto the screen.
package dashboard
