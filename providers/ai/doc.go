// Package ai defines the shared, vendor-agnostic contract implemented by every
// adapter (OpenAI, Anthropic, Gemini, OpenRouter, ElevenLabs).
//
// The contract is a capability set rather than a single fat interface: every
// adapter satisfies [Provider], and additionally implements whichever of
// [Chatter], [ContentGenerator], [StructuredGenerator], [ImageGenerator],
// [SpeechSynthesizer] and [CredentialValidator] its vendor supports. The
// package-level dispatch functions ([Chat], [GenerateContent], ...) return an
// [UnsupportedError] for missing operations so callers can tell "this provider
// can't do X" apart from "the call to do X failed".
//
// Per-call configuration arrives as a [ResolvedConfig]; adapters are built from
// it through a [Constructor].
package ai
