// Package elevenlabs implements the ElevenLabs text-to-speech adapter.
package elevenlabs
