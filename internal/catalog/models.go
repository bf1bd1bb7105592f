package catalog

// Provider names the registry dispatches on.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Models is the full model catalog. Only groq-backed entries are live; the
// ollama entries are configured-but-inert placeholders kept visible so the
// picker can advertise what is coming.
var Models = []Model{
	// Groq free tier. All entries share one API key from console.groq.com.
	{
		ID:          "groq-llama-3.1-8b",
		Provider:    ProviderGroq,
		Model:       "llama-3.1-8b-instant",
		Label:       "Groq-Llama 3.1 8B – Ultra Fast",
		BestFor:     "Real-time chat, coding, general tasks",
		Description: "Blazing fast (highest speed on Groq). Ideal default for low-latency apps.",
	},
	{
		ID:          "groq-llama-3.3-70b",
		Provider:    ProviderGroq,
		Model:       "llama-3.3-70b-versatile",
		Label:       "Groq-Llama 3.3 70B – High Quality",
		BestFor:     "Advanced reasoning, analysis, complex tasks",
		Description: "Latest high-capability model. Strongest reasoning on Groq free tier.",
	},
	{
		ID:          "groq-gpt-oss-20b",
		Provider:    ProviderGroq,
		Model:       "openai/gpt-oss-20b",
		Label:       "Groq-GPT OSS 20B – Balanced Speed",
		BestFor:     "General-purpose, creative tasks",
		Description: "Fast mid-size open model with good performance.",
	},
	{
		ID:          "groq-gpt-oss-120b",
		Provider:    ProviderGroq,
		Model:       "openai/gpt-oss-120b",
		Label:       "Groq-GPT OSS 120B – Flagship Scale",
		BestFor:     "Heavy reasoning, large-scale tasks",
		Description: "Largest available model on Groq. Powerful but slower/higher token use.",
	},

	// Ollama local models, not wired up yet.
	{
		ID:          "ollama-llama3",
		Provider:    ProviderOllama,
		Model:       "llama3",
		Label:       "Ollama-LLaMA 3 – Local (Upcoming)",
		BestFor:     "Offline usage, privacy",
		Description: "Runs locally using Ollama. Best for private and offline workflows.",
	},
	{
		ID:          "ollama-mistral",
		Provider:    ProviderOllama,
		Model:       "mistral",
		Label:       "Ollama-Mistral – Local (Upcoming)",
		BestFor:     "Fast local inference",
		Description: "Lightweight local model with good performance on limited hardware.",
	},
}
