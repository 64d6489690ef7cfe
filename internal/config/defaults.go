package config

const (
	DefaultCount              = 30
	DefaultBatchSize          = 10
	DefaultTemperature        = 0.8
	DefaultMaxTokens          = 500
	DefaultMinQualityScore    = 60.0
	DefaultSimilarityCeiling  = 0.85
	DefaultMinTechnicalTerms  = 2
	DefaultMaxAttemptsPerSlot = 3
	DefaultMinWords           = 30
	DefaultMaxWords           = 200
)

// DefaultWeights returns the standard evaluator weights.
func DefaultWeights() Weights {
	return Weights{
		Diversity: 0.30,
		Bias:      0.30,
		Realism:   0.40,
	}
}

// DefaultThresholds returns quality guardrail settings with default values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinQualityScore:    DefaultMinQualityScore,
		SimilarityCeiling:  DefaultSimilarityCeiling,
		MinTechnicalTerms:  DefaultMinTechnicalTerms,
		MaxAttemptsPerSlot: DefaultMaxAttemptsPerSlot,
		OnExhausted:        ExhaustedAbandon,
		Weights:            DefaultWeights(),
	}
}

// DefaultConfig returns a Config with all default values applied.
// The built-in personas and tool categories cover the common dev-tool
// review space; a config file replaces them wholesale when present.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			DefaultCount: DefaultCount,
			BatchSize:    DefaultBatchSize,
		},
		Models: []ModelConfig{
			{
				Name:        "gpt-4o",
				Provider:    ProviderOpenAI,
				Temperature: DefaultTemperature,
				MaxTokens:   DefaultMaxTokens,
			},
		},
		Personas: defaultPersonas(),
		ToolCategories: defaultToolCategories(),
		RatingDistribution: map[int]float64{
			1: 0.10,
			2: 0.15,
			3: 0.25,
			4: 0.30,
			5: 0.20,
		},
		Characteristics: Characteristics{
			Tones: []string{"professional", "casual", "enthusiastic", "critical"},
			Length: LengthRange{
				MinWords: DefaultMinWords,
				MaxWords: DefaultMaxWords,
			},
		},
		Thresholds: DefaultThresholds(),
	}
}

func defaultPersonas() []Persona {
	return []Persona{
		{
			Name:        "Backend Engineer",
			Description: "Senior backend engineer working on distributed services",
			Characteristics: []string{
				"cares about API ergonomics and reliability",
				"mentions latency, throughput, and debugging experience",
				"skeptical of marketing claims",
			},
			Weight: 1.0,
		},
		{
			Name:        "Frontend Developer",
			Description: "Frontend developer shipping a React product",
			Characteristics: []string{
				"focuses on DX, docs quality, and editor integration",
				"notices UI polish and configuration friction",
			},
			Weight: 1.0,
		},
		{
			Name:        "DevOps Engineer",
			Description: "Platform engineer responsible for CI/CD and observability",
			Characteristics: []string{
				"evaluates pipeline integration and monitoring hooks",
				"sensitive to pricing and on-call impact",
			},
			Weight: 1.0,
		},
		{
			Name:        "Engineering Manager",
			Description: "Manager of a mid-size product team",
			Characteristics: []string{
				"weighs team adoption cost against productivity gains",
				"mentions licensing, seats, and onboarding",
			},
			Weight: 0.6,
		},
		{
			Name:        "CS Student",
			Description: "Student using free tiers for coursework and side projects",
			Characteristics: []string{
				"compares free tier limits",
				"less formal vocabulary, shorter reviews",
			},
			Weight: 0.4,
		},
	}
}

func defaultToolCategories() []ToolCategory {
	return []ToolCategory{
		{
			Name:     "API Testing Tools",
			Examples: []string{"Postman", "Insomnia", "Hoppscotch"},
			Features: []string{
				"request builder", "collection management", "environment variables",
				"mock servers", "GraphQL support", "team workspaces",
			},
		},
		{
			Name:     "CI/CD Platforms",
			Examples: []string{"GitHub Actions", "CircleCI", "GitLab CI"},
			Features: []string{
				"YAML configuration", "parallel execution", "artifact management",
				"caching", "matrix builds", "deployment environments",
			},
		},
		{
			Name:     "Monitoring & Observability",
			Examples: []string{"Datadog", "Grafana", "New Relic"},
			Features: []string{
				"real-time metrics", "log aggregation", "dashboard customization",
				"APM tracing", "alerting rules", "anomaly detection",
			},
		},
		{
			Name:     "Code Quality Tools",
			Examples: []string{"SonarQube", "ESLint", "CodeClimate"},
			Features: []string{
				"static analysis", "technical debt tracking", "custom rules",
				"CI integration", "security scanning", "style enforcement",
			},
		},
		{
			Name:     "IDE Extensions",
			Examples: []string{"GitHub Copilot", "GitLens", "Prettier"},
			Features: []string{
				"inline suggestions", "blame annotations", "commit graph",
				"auto-formatting", "keyboard shortcuts", "settings sync",
			},
		},
	}
}
