package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/aibridge/core/aierr"
	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/core/parse"
	"github.com/leofalp/aibridge/internal/utils"
	"github.com/leofalp/aibridge/providers/ai"
)

// --- catalog commands ---

func (a *app) providersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List built-in providers and their modalities",
		Long: `List built-in providers. With --modality, list only the enabled providers
supporting it; enablement comes from the config file, or from a YAML file of
the form "providers: {id: bool}" given with --enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modalityName, _ := cmd.Flags().GetString("modality")
			if modalityName == "" {
				for _, d := range a.catalog.Descriptors() {
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", d.ID, joinModalities(d.Modalities()))
				}
				return nil
			}

			modality, ok := ai.ParseModality(modalityName)
			if !ok {
				return fmt.Errorf("unknown modality %q", modalityName)
			}

			var lookup capability.EnabledLookup = a.cfg
			if enabledPath, _ := cmd.Flags().GetString("enabled"); enabledPath != "" {
				fileLookup, err := capability.LoadFileEnabled(enabledPath)
				if err != nil {
					return err
				}
				lookup = fileLookup
			}

			descriptors, err := a.catalog.ProvidersSupporting(a.ctx(cmd), modality, lookup)
			if err != nil {
				return err
			}
			for _, d := range descriptors {
				fmt.Fprintln(cmd.OutOrStdout(), d.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringP("modality", "m", "", "Only providers supporting this modality (chat, content, image, audio)")
	cmd.Flags().String("enabled", "", "YAML file with enabled-provider flags")
	return cmd
}

func (a *app) modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models <provider> <modality>",
		Short: "List the models of a provider modality",
		Long:  `List the model catalog of a provider modality. The default model is marked with '*'.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modality, ok := ai.ParseModality(args[1])
			if !ok {
				return fmt.Errorf("unknown modality %q", args[1])
			}
			if !a.catalog.Supports(args[0], modality) {
				return fmt.Errorf("provider %q does not support %s", args[0], modality)
			}

			models := a.catalog.ModelsFor(args[0], modality)
			if models.Dynamic {
				fmt.Fprintln(cmd.OutOrStdout(), "(dynamic: models are resolved by the vendor at call time)")
				return nil
			}
			defaultModel, _ := a.catalog.DefaultModelFor(args[0], modality)
			for _, id := range models.IDs {
				marker := " "
				if id == defaultModel {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, id)
			}
			return nil
		},
	}
}

// --- normalization commands ---

func (a *app) classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Map a vendor failure to its canonical error kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetInt("status")
			message, _ := cmd.Flags().GetString("message")
			transportName, _ := cmd.Flags().GetString("transport")
			fallbackName, _ := cmd.Flags().GetString("fallback")

			transport, ok := aierr.ParseTransportFailure(transportName)
			if !ok {
				return fmt.Errorf("unknown transport failure %q (none, timeout, connection)", transportName)
			}
			fallback, ok := aierr.ParseKind(fallbackName)
			if !ok {
				return fmt.Errorf("unknown error kind %q", fallbackName)
			}

			kind := aierr.MapError(status, message, transport, fallback)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", kind, kind.UserMessage())
			return nil
		},
	}
	cmd.Flags().Int("status", 0, "HTTP status code (0 when the call produced no response)")
	cmd.Flags().String("message", "", "Vendor error message")
	cmd.Flags().String("transport", "none", "Transport failure: none, timeout, connection")
	cmd.Flags().String("fallback", aierr.GenericProviderError.String(), "Kind returned when no rule matches")
	return cmd
}

func (a *app) extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Extract the JSON object from model output read on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			obj, ok := parse.ExtractObject(string(input))
			if !ok {
				return fmt.Errorf("no JSON object found in input")
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.JSONToString(obj, true))
			return nil
		},
	}
}

// --- provider commands ---

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <provider>",
		Short: "Check the configured credential of a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.provider(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			status, err := ai.ValidateCredential(a.ctx(cmd), p)
			fmt.Fprintln(cmd.OutOrStdout(), status)
			if err != nil {
				return describe(err)
			}
			return nil
		},
	}
}

func (a *app) chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <provider> <prompt>",
		Short: "Send one user message and print the answer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			system, _ := cmd.Flags().GetString("system")
			model, _ := cmd.Flags().GetString("model")

			p, err := a.provider(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			resp, err := ai.Chat(a.ctx(cmd), p, ai.ChatRequest{
				Model:        model,
				SystemPrompt: system,
				Messages:     []ai.Message{{Role: ai.RoleUser, Content: args[1]}},
			})
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Content)
			return nil
		},
	}
	cmd.Flags().StringP("system", "s", "", "System prompt")
	cmd.Flags().StringP("model", "m", "", "Override the configured chat model")
	return cmd
}

func (a *app) structuredCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "structured <provider> <prompt>",
		Short: "Ask for a JSON object and print it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaPath, _ := cmd.Flags().GetString("schema")
			model, _ := cmd.Flags().GetString("model")

			var schema []byte
			if schemaPath != "" {
				var err error
				if schema, err = os.ReadFile(schemaPath); err != nil {
					return fmt.Errorf("reading schema: %w", err)
				}
			}

			p, err := a.provider(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			resp, err := ai.GenerateStructuredContent(a.ctx(cmd), p, ai.StructuredRequest{
				Model:  model,
				Prompt: args[1],
				Schema: schema,
			})
			if err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), utils.JSONToString(resp.Object, true))
			return nil
		},
	}
	cmd.Flags().String("schema", "", "JSON Schema file the object must follow")
	cmd.Flags().StringP("model", "m", "", "Override the configured content model")
	return cmd
}

func (a *app) imageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <provider> <prompt>",
		Short: "Generate an image and write it to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			size, _ := cmd.Flags().GetString("size")

			p, err := a.provider(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			img, err := ai.GenerateImage(a.ctx(cmd), p, ai.ImageRequest{Prompt: args[1], Size: size})
			if err != nil {
				return describe(err)
			}
			if len(img.Data) == 0 && img.URL != "" {
				fmt.Fprintln(cmd.OutOrStdout(), img.URL)
				return nil
			}
			return writeOutput(cmd, output, img)
		},
	}
	cmd.Flags().StringP("output", "o", "image.png", "Output file")
	cmd.Flags().String("size", "", "Image size, e.g. 1024x1024")
	return cmd
}

func (a *app) speakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speak <provider> <text>",
		Short: "Synthesize speech and write it to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			voice, _ := cmd.Flags().GetString("voice")

			p, err := a.provider(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			audio, err := ai.TextToSpeech(a.ctx(cmd), p, ai.SpeechRequest{Text: args[1], Voice: voice})
			if err != nil {
				return describe(err)
			}
			return writeOutput(cmd, output, audio)
		},
	}
	cmd.Flags().StringP("output", "o", "speech.mp3", "Output file")
	cmd.Flags().String("voice", "", "Voice identifier")
	return cmd
}

func writeOutput(cmd *cobra.Command, path string, result *ai.BinaryResult) error {
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes (%s) to %s\n", len(result.Data), result.MimeType, path)
	return nil
}

// describe prefixes a normalized provider error with its user-facing message.
func describe(err error) error {
	if kind, ok := aierr.KindOf(err); ok {
		return fmt.Errorf("%s\n%w", kind.UserMessage(), err)
	}
	return err
}

func joinModalities(modalities []ai.Modality) string {
	names := make([]string, len(modalities))
	for i, m := range modalities {
		names[i] = string(m)
	}
	return strings.Join(names, ",")
}
