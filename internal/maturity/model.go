// Package maturity implements the organizational AI maturity assessment:
// a fixed questionnaire whose option scores average into one of five
// maturity levels, with a per-category breakdown.
package maturity

type Level struct {
	Level             int      `json:"level"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Characteristics   []string `json:"characteristics"`
	RecommendedTracks []string `json:"recommended_tracks"`
	NextSteps         []string `json:"next_steps"`
}

// Levels is the five-level maturity ladder, ordered Aware → Transformative.
var Levels = []Level{
	{
		Level:       1,
		Name:        "Aware",
		Description: "Your organization recognizes AI's potential but hasn't begun systematic adoption.",
		Characteristics: []string{
			"Limited understanding of AI capabilities",
			"No formal AI training programs",
			"Ad-hoc tool usage by individuals",
			"No AI strategy or governance",
		},
		RecommendedTracks: []string{"everyone"},
		NextSteps: []string{
			"Start with foundational AI literacy for all employees",
			"Identify AI champions across departments",
			"Complete the 'AI for Everyone' certification track",
		},
	},
	{
		Level:       2,
		Name:        "Exploring",
		Description: "Your organization is experimenting with AI tools and building foundational knowledge.",
		Characteristics: []string{
			"Pockets of AI tool usage across teams",
			"Some employees self-learning AI skills",
			"Beginning to discuss AI strategy",
			"Limited governance or policies",
		},
		RecommendedTracks: []string{"everyone", "product-managers"},
		NextSteps: []string{
			"Formalize AI training across key roles",
			"Develop initial AI usage guidelines",
			"Pilot AI tools in specific workflows",
		},
	},
	{
		Level:       3,
		Name:        "Implementing",
		Description: "Your organization is actively deploying AI across multiple functions with growing expertise.",
		Characteristics: []string{
			"Role-specific AI training programs",
			"Multiple AI tools in production use",
			"Emerging AI governance framework",
			"Measurable productivity improvements",
		},
		RecommendedTracks: []string{"product-managers", "business-analysts", "project-managers"},
		NextSteps: []string{
			"Scale AI training to all professional roles",
			"Establish AI Center of Excellence",
			"Define AI success metrics and KPIs",
		},
	},
	{
		Level:       4,
		Name:        "Scaling",
		Description: "AI is embedded across your organization with mature practices and measurable ROI.",
		Characteristics: []string{
			"Comprehensive AI skills across workforce",
			"AI integrated into core business processes",
			"Robust AI governance and ethics framework",
			"Clear ROI tracking and optimization",
		},
		RecommendedTracks: []string{"executives"},
		NextSteps: []string{
			"Develop AI innovation capabilities",
			"Build AI-powered products and services",
			"Establish industry leadership position",
		},
	},
	{
		Level:       5,
		Name:        "Transformative",
		Description: "Your organization leads the industry in AI-native practices and drives innovation.",
		Characteristics: []string{
			"AI-native culture and mindset",
			"Continuous AI innovation and experimentation",
			"AI-powered products and competitive advantage",
			"Thought leadership and industry influence",
		},
		RecommendedTracks: []string{"executives"},
		NextSteps: []string{
			"Share learnings through industry contributions",
			"Build next-generation AI capabilities",
			"Lead AI transformation for partners and ecosystem",
		},
	},
}
