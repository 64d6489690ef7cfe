package collector

// reviewTemplate is one curated baseline review.
type reviewTemplate struct {
	Text     string
	Rating   int
	Tool     string
	Category string
}

// baselineTemplates is the curated sample corpus. These follow the shape
// of reviews found on G2 and Product Hunt; a production deployment would
// scrape live sources instead.
var baselineTemplates = []reviewTemplate{
	{
		Text: "Postman has been a game-changer for our API development " +
			"workflow. The request builder is intuitive, and the collection " +
			"management makes it easy to organize endpoints. Environment " +
			"variables are super helpful for switching between " +
			"dev/staging/prod. Only wish the free tier had better team " +
			"collaboration features.",
		Rating:   5,
		Tool:     "Postman",
		Category: "API Testing Tools",
	},
	{
		Text: "GitHub Actions is decent for CI/CD but the YAML configuration " +
			"can get complex quickly. Integration with GitHub repos is " +
			"seamless which is great. Parallel execution works well but " +
			"debugging failed workflows is sometimes frustrating. " +
			"Documentation could be better.",
		Rating:   3,
		Tool:     "GitHub Actions",
		Category: "CI/CD Platforms",
	},
	{
		Text: "Datadog's monitoring capabilities are excellent. Real-time " +
			"metrics and log aggregation work flawlessly. The dashboard " +
			"customization is powerful, though it takes time to learn. APM " +
			"features have helped us identify bottlenecks quickly. Pricing " +
			"is steep for small teams though.",
		Rating:   4,
		Tool:     "Datadog",
		Category: "Monitoring & Observability",
	},
	{
		Text: "SonarQube catches code quality issues that we'd otherwise " +
			"miss. Static analysis is thorough and the technical debt " +
			"tracking is valuable. However, setup was painful and the UI " +
			"feels outdated. Integration with our CI pipeline works but " +
			"required significant configuration.",
		Rating:   3,
		Tool:     "SonarQube",
		Category: "Code Quality Tools",
	},
	{
		Text: "GitHub Copilot has significantly improved my coding speed. " +
			"The AI suggestions are surprisingly accurate most of the time. " +
			"It's especially helpful for boilerplate code and common " +
			"patterns. Sometimes suggests outdated approaches though. Worth " +
			"the subscription for professional developers.",
		Rating:   4,
		Tool:     "GitHub Copilot",
		Category: "IDE Extensions",
	},
	{
		Text: "Insomnia is a solid alternative to Postman. The UI is cleaner " +
			"and less cluttered. GraphQL support is excellent. However, it " +
			"lacks some advanced features like mock servers. Good for " +
			"individual developers but team features are limited.",
		Rating:   4,
		Tool:     "Insomnia",
		Category: "API Testing Tools",
	},
	{
		Text: "CircleCI's build times are fast and the parallel execution is " +
			"great. Configuration is straightforward compared to other CI " +
			"tools. Artifact management works well. The free tier is " +
			"generous. Only downside is occasional platform outages that " +
			"block our deployments.",
		Rating:   4,
		Tool:     "CircleCI",
		Category: "CI/CD Platforms",
	},
	{
		Text: "Grafana dashboards are beautiful and highly customizable. The " +
			"visualization options are extensive. Integration with " +
			"Prometheus works seamlessly. Learning curve is steep though, " +
			"and query syntax takes time to master. Open source version is " +
			"feature-rich.",
		Rating:   4,
		Tool:     "Grafana",
		Category: "Monitoring & Observability",
	},
	{
		Text: "ESLint is essential for JavaScript projects. Catches common " +
			"errors and enforces code style consistently. Custom rule " +
			"configuration is powerful. IDE integration works perfectly. " +
			"Can be slow on large codebases but the trade-off is worth it.",
		Rating:   5,
		Tool:     "ESLint",
		Category: "Code Quality Tools",
	},
	{
		Text: "GitLens transforms VS Code's Git capabilities. Blame " +
			"annotations are incredibly useful. The commit graph " +
			"visualization helps understand project history. Some features " +
			"feel overwhelming at first but you can disable what you don't " +
			"need. Highly recommended for any Git user.",
		Rating:   5,
		Tool:     "GitLens",
		Category: "IDE Extensions",
	},
}
