// Package transport adapts generation requests to the txt2pptx HTTP API.
//
// Endpoints:
//   - POST /api/generate: submit a Request, receive the outline and filename
//   - GET /api/download/{filename}: fetch the generated deck
//   - GET /api/health: liveness and service version
//
// Every failure is classified as an apperrors.NetworkError (no response),
// apperrors.ProtocolError (the service said no) or apperrors.DecodeError
// (the response could not be read).
package transport
