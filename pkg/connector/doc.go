// Package connector stores the email, SMS and social connectors a tenant has
// configured. Connector config is a JSON object; patches merge into it.
package connector
