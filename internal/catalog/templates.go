package catalog

// Templates is the full template catalog, grouped roughly by audience.
var Templates = []Template{
	// Code & engineering.
	{
		ID:          "code-review",
		Title:       "AI Code Review",
		Description: "Review code for bugs, performance, and best practices",
		Inputs: []InputSpec{
			{
				Name:    "Language",
				Type:    InputSelectSearch,
				Options: []string{"JavaScript", "TypeScript", "Python", "Java", "C++", "Go"},
			},
			{Name: "Code", Type: InputTextarea},
		},
		SystemPrompt: "You are a senior software engineer.\n" +
			"Review the code strictly and objectively.\n" +
			"Focus on bugs, performance, readability, security, and scalability.",
	},
	{
		ID:          "bug-finder",
		Title:       "Bug Finder",
		Description: "Identify bugs and logical errors in code",
		Inputs: []InputSpec{
			{
				Name:    "Language",
				Type:    InputSelectSearch,
				Options: []string{"JavaScript", "Python", "Java", "C++"},
			},
			{Name: "Error or Code Snippet", Type: InputTextarea},
		},
		SystemPrompt: "You are an expert debugging assistant.\n" +
			"Identify root causes and provide fixes.",
	},
	{
		ID:          "code-explainer",
		Title:       "Code Explanation",
		Description: "Explain code step-by-step",
		Inputs: []InputSpec{
			{
				Name:    "Language",
				Type:    InputSelectSearch,
				Options: []string{"JavaScript", "Python", "Java"},
			},
			{Name: "Code", Type: InputTextarea},
		},
		SystemPrompt: "You are a technical educator.\n" +
			"Explain the code clearly with examples.",
	},
	{
		ID:          "system-design",
		Title:       "System Design Assistant",
		Description: "Generate high-level system design",
		Inputs: []InputSpec{
			{Name: "Problem Statement", Type: InputTextarea},
			{Name: "Expected Scale", Type: InputText},
		},
		SystemPrompt: "You are a senior system architect.\n" +
			"Design a scalable system and explain trade-offs.",
	},

	// Career & interviews.
	{
		ID:          "resume-review",
		Title:       "Resume Reviewer",
		Description: "Improve resume bullets for impact",
		Inputs: []InputSpec{
			{Name: "Target Role", Type: InputText},
			{Name: "Resume Content", Type: InputTextarea},
		},
		SystemPrompt: "You are a senior recruiter.\n" +
			"Rewrite resume bullets using strong action verbs and metrics.",
	},
	{
		ID:          "interview-questions",
		Title:       "Interview Question Generator",
		Description: "Generate interview questions by topic",
		Inputs: []InputSpec{
			{Name: "Topic", Type: InputText},
			{Name: "Experience Level", Type: InputText},
		},
		SystemPrompt: "You are a technical interviewer.\n" +
			"Generate questions from easy to hard.",
	},

	// Product & business.
	{
		ID:          "prd-generator",
		Title:       "PRD Generator",
		Description: "Generate product requirement document",
		Inputs: []InputSpec{
			{Name: "Product Idea", Type: InputTextarea},
			{Name: "Target Users", Type: InputText},
		},
		SystemPrompt: "You are a product manager.\n" +
			"Create a clear PRD with goals, features, and metrics.",
	},
	{
		ID:          "business-idea",
		Title:       "Business Idea Analyzer",
		Description: "Analyze feasibility of a business idea",
		Inputs: []InputSpec{
			{Name: "Business Idea", Type: InputTextarea},
			{Name: "Market", Type: InputText},
		},
		SystemPrompt: "You are a startup advisor.\n" +
			"Analyze risks, monetization, and competition.",
		OutputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"risks":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"monetization": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"competition":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"verdict":      map[string]any{"type": "string"},
			},
			"required": []any{"risks", "monetization", "competition", "verdict"},
		},
	},

	// Content & writing.
	{
		ID:          "content-writer",
		Title:       "Content Writer",
		Description: "Generate or improve content",
		Inputs: []InputSpec{
			{Name: "Content Type", Type: InputText},
			{Name: "Content", Type: InputTextarea},
		},
		SystemPrompt: "You are a professional writer.\n" +
			"Improve clarity, tone, and structure.",
	},
	{
		ID:          "summarizer",
		Title:       "Text Summarizer",
		Description: "Summarize long text",
		Inputs: []InputSpec{
			{Name: "Text", Type: InputTextarea},
		},
		SystemPrompt: "You are an expert summarizer.\n" +
			"Extract key insights concisely.",
	},

	// Prompt engineering.
	{
		ID:          "prompt-engineer",
		Title:       "Prompt Generator",
		Description: "Generate optimized AI prompts",
		Inputs: []InputSpec{
			{Name: "Task Description", Type: InputTextarea},
		},
		SystemPrompt: "You are a prompt engineering expert.\n" +
			"Generate a clear and optimized prompt.",
	},

	// Free-form chat.
	{
		ID:          ChatTemplateID,
		Title:       "Chat with AI",
		Description: "Have a free-form conversation with an AI assistant",
		Inputs: []InputSpec{
			{Name: "Your Message", Type: InputTextarea},
		},
		SystemPrompt: "You are a helpful, intelligent AI assistant.\n" +
			"Respond conversationally, clearly, and concisely.\n" +
			"Adapt your tone based on the user's message.",
	},
}
