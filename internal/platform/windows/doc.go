// Package windows backs the platform interfaces with the Windows UI
// Automation COM API and user32 input simulation. Every implementation file
// is build-tagged; on other platforms the package is empty and the provider
// registration never runs.
package windows
