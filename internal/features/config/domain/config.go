package domain

// AppConfig represents the application configuration.
type AppConfig struct {
	CataloguePath string           `json:"catalogue_path,omitempty"`
	Motivation    MotivationConfig `json:"motivation"`
	Chat          ChatConfig       `json:"chat"`
}

// ModelParams defines the parameters for the AI model.
type ModelParams struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Model       string  `json:"model,omitempty"`
}

// MotivationConfig drives the motivation feed.
type MotivationConfig struct {
	Provider          string      `json:"provider"`
	Prompt            string      `json:"prompt"`
	FulfillmentPrompt string      `json:"fulfillment_prompt"`
	ModelParams       ModelParams `json:"model_params"`
	Placeholder       string      `json:"placeholder"`
	EmptyFallback     string      `json:"empty_fallback"`
	ErrorFallback     string      `json:"error_fallback"`
}

// ChatConfig drives the chat assistant.
type ChatConfig struct {
	Provider          string `json:"provider"`
	Model             string `json:"model,omitempty"`
	SystemInstruction string `json:"system_instruction"`
	EmptyFallback     string `json:"empty_fallback"`
	ErrorFallback     string `json:"error_fallback"`
}

// DefaultAppConfig is used when no config file exists, and fills any field a
// partial file leaves empty.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Motivation: MotivationConfig{
			Provider: "openai",
			Prompt:   "Give me a short motivational quote for a student preparing for placements.",
			FulfillmentPrompt: "You are a motivational coach for students preparing for campus placements. " +
				"Reply with a single short, original, uplifting quote of at most 25 words. " +
				"Do not add explanations, quotation marks or attribution.",
			ModelParams:   ModelParams{Temperature: 0.7, MaxTokens: 60, Model: "gpt-4o-mini"},
			Placeholder:   "Loading your daily dose of motivation...",
			EmptyFallback: "Every expert was once a beginner. Keep going!",
			ErrorFallback: "Success is the sum of small efforts repeated day in and day out.",
		},
		Chat: ChatConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
			SystemInstruction: "You are PrepBot, an assistant for students preparing for technical placements. " +
				"Only help with placement preparation: data structures and algorithms, core CS subjects, " +
				"aptitude, resumes, interviews and the learning tracks on this platform. " +
				"Politely decline anything unrelated and keep answers concise.",
			EmptyFallback: "Sorry, I couldn't come up with a response. Please try rephrasing your question.",
			ErrorFallback: "Sorry, I'm having trouble connecting right now. Please try again in a moment.",
		},
	}
}

// WithDefaults returns c with every empty field taken from DefaultAppConfig.
func (c AppConfig) WithDefaults() AppConfig {
	d := DefaultAppConfig()
	m, dm := &c.Motivation, d.Motivation
	fill(&m.Provider, dm.Provider)
	fill(&m.Prompt, dm.Prompt)
	fill(&m.FulfillmentPrompt, dm.FulfillmentPrompt)
	fill(&m.ModelParams.Model, dm.ModelParams.Model)
	fill(&m.Placeholder, dm.Placeholder)
	fill(&m.EmptyFallback, dm.EmptyFallback)
	fill(&m.ErrorFallback, dm.ErrorFallback)
	if m.ModelParams.MaxTokens <= 0 {
		m.ModelParams.MaxTokens = dm.ModelParams.MaxTokens
	}
	if m.ModelParams.Temperature < 0 || m.ModelParams.Temperature > 1 {
		m.ModelParams.Temperature = dm.ModelParams.Temperature
	}

	ch, dc := &c.Chat, d.Chat
	fill(&ch.Provider, dc.Provider)
	fill(&ch.Model, dc.Model)
	fill(&ch.SystemInstruction, dc.SystemInstruction)
	fill(&ch.EmptyFallback, dc.EmptyFallback)
	fill(&ch.ErrorFallback, dc.ErrorFallback)
	return c
}

func fill(field *string, def string) {
	if *field == "" {
		*field = def
	}
}
