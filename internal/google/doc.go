// Package google provides OAuth2 authentication and token management for Google APIs.
//
// Tokens are stored per account in the user cache directory, so one server
// can act on behalf of several Google accounts. The TokenProvider interface
// allows different token sources to be plugged in; the file-based provider
// serves the STDIO transport.
//
// The package also validates Drive and Docs resource IDs before they reach
// an API call.
package google
