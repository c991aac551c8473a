// Package openrouter implements the OpenRouter adapter on top of the OpenAI
// chat completions client. Models are resolved at call time.
package openrouter
