// Package openai implements the OpenAI adapter: chat, content and structured
// generation over /chat/completions, image generation, text-to-speech and
// credential validation.
//
// [Compatible] holds the chat completions client and is reused by other
// vendors that speak the same protocol.
package openai
