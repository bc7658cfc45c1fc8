// Package genai implements the assistant.Generator contract against the
// Google Gemini GenerateContent API.
//
// The client speaks the native wire format: transcript turns become
// role-tagged contents ("user"/"model"), the shopping-assistant persona
// rides as a per-call system instruction, and grounded search attaches
// the googleSearch tool and reads grounding chunks from the response.
// Each call is a single attempt bounded by the caller's context; retry
// policy is deliberately absent.
package genai
