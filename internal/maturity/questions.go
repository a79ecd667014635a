package maturity

type Category string

const (
	Strategy   Category = "strategy"
	Skills     Category = "skills"
	Tools      Category = "tools"
	Culture    Category = "culture"
	Governance Category = "governance"
)

type Option struct {
	Text  string `json:"text"`
	Score int    `json:"score"` // 1..5
}

type Question struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// Questions is the ten-question maturity questionnaire.
var Questions = []Question{
	{
		ID:       "q1",
		Category: Strategy,
		Question: "Does your organization have a formal AI strategy?",
		Options: []Option{
			{Text: "No, we haven't discussed AI strategy", Score: 1},
			{Text: "We're beginning to discuss it informally", Score: 2},
			{Text: "We have a documented AI strategy", Score: 3},
			{Text: "Our AI strategy is actively driving investments", Score: 4},
			{Text: "AI is core to our business strategy and competitive advantage", Score: 5},
		},
	},
	{
		ID:       "q2",
		Category: Skills,
		Question: "How would you describe AI skills across your workforce?",
		Options: []Option{
			{Text: "Very few employees understand AI", Score: 1},
			{Text: "Some individuals are self-learning AI tools", Score: 2},
			{Text: "We have role-specific AI training programs", Score: 3},
			{Text: "Most employees are AI-proficient in their roles", Score: 4},
			{Text: "AI literacy is universal and continuously developed", Score: 5},
		},
	},
	{
		ID:       "q3",
		Category: Tools,
		Question: "How are AI tools used in your organization?",
		Options: []Option{
			{Text: "Minimal or no AI tool usage", Score: 1},
			{Text: "Ad-hoc usage by individuals", Score: 2},
			{Text: "Approved AI tools for specific use cases", Score: 3},
			{Text: "AI tools integrated into core workflows", Score: 4},
			{Text: "AI tools are essential to how we work", Score: 5},
		},
	},
	{
		ID:       "q4",
		Category: Governance,
		Question: "What AI governance and policies exist?",
		Options: []Option{
			{Text: "No AI-specific policies", Score: 1},
			{Text: "Informal guidelines being developed", Score: 2},
			{Text: "Documented policies for AI usage and data", Score: 3},
			{Text: "Comprehensive governance framework in place", Score: 4},
			{Text: "Mature governance with continuous improvement", Score: 5},
		},
	},
	{
		ID:       "q5",
		Category: Culture,
		Question: "How do leaders view AI adoption?",
		Options: []Option{
			{Text: "Skeptical or uninformed about AI", Score: 1},
			{Text: "Curious but not actively engaged", Score: 2},
			{Text: "Supportive and allocating resources", Score: 3},
			{Text: "Championing AI transformation", Score: 4},
			{Text: "Leading by example with AI-native practices", Score: 5},
		},
	},
	{
		ID:       "q6",
		Category: Skills,
		Question: "How do product teams use AI in their work?",
		Options: []Option{
			{Text: "Rarely or never", Score: 1},
			{Text: "Occasionally for specific tasks", Score: 2},
			{Text: "Regularly for research and documentation", Score: 3},
			{Text: "Integrated throughout the product lifecycle", Score: 4},
			{Text: "AI-first approach to product development", Score: 5},
		},
	},
	{
		ID:       "q7",
		Category: Tools,
		Question: "How do you measure AI's impact on productivity?",
		Options: []Option{
			{Text: "We don't measure AI impact", Score: 1},
			{Text: "Anecdotal observations only", Score: 2},
			{Text: "Some metrics for specific use cases", Score: 3},
			{Text: "Systematic measurement across teams", Score: 4},
			{Text: "Clear ROI tracking with continuous optimization", Score: 5},
		},
	},
	{
		ID:       "q8",
		Category: Governance,
		Question: "How do you handle AI ethics and responsible use?",
		Options: []Option{
			{Text: "Haven't addressed ethics formally", Score: 1},
			{Text: "General awareness but no framework", Score: 2},
			{Text: "Ethics guidelines documented and communicated", Score: 3},
			{Text: "Ethics review integrated into AI deployments", Score: 4},
			{Text: "Industry-leading responsible AI practices", Score: 5},
		},
	},
	{
		ID:       "q9",
		Category: Culture,
		Question: "How do employees view AI in their daily work?",
		Options: []Option{
			{Text: "Fear or resistance to AI", Score: 1},
			{Text: "Cautious curiosity", Score: 2},
			{Text: "Willing to adopt with guidance", Score: 3},
			{Text: "Enthusiastic early adopters", Score: 4},
			{Text: "AI-native mindset: can't imagine working without it", Score: 5},
		},
	},
	{
		ID:       "q10",
		Category: Strategy,
		Question: "What's the scope of your AI training initiatives?",
		Options: []Option{
			{Text: "No formal AI training", Score: 1},
			{Text: "Voluntary, self-directed learning", Score: 2},
			{Text: "Structured training for specific roles", Score: 3},
			{Text: "Comprehensive training across all roles", Score: 4},
			{Text: "Continuous AI upskilling with certifications", Score: 5},
		},
	},
}
