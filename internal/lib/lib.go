// Package lib acts as a library for modules that do not fit strictly into
// other layers.
//
// It contains background job processing (Redis/Asynq), the email client
// (Resend), the card generation client (Gemini), and the legal document
// registry.
package lib
