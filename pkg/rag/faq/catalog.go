package faq

// DefaultCatalog returns the built-in interviewer question catalog.
// Callers get a fresh copy; the patterns themselves never change.
func DefaultCatalog() []Pattern {
	out := make([]Pattern, len(catalog))
	copy(out, catalog)
	return out
}

var catalog = []Pattern{
	// introduction
	{
		Category:       "introduction",
		Question:       "Tell me about yourself",
		Keywords:       []string{"about yourself", "introduce yourself", "who are you", "background", "tell me about"},
		ContextHint:    "personal summary, current role or studies, core stack and one standout achievement",
		RelevanceBoost: 0.95,
	},
	{
		Category:       "introduction",
		Question:       "Why should we hire you?",
		Keywords:       []string{"why hire", "why should we", "what makes you", "why you"},
		ContextHint:    "deployed projects, competition results and the modern stack used in production",
		RelevanceBoost: 0.95,
	},
	{
		Category:       "introduction",
		Question:       "What are your career goals?",
		Keywords:       []string{"career goals", "future plans", "where do you see yourself", "aspirations", "ambitions"},
		ContextHint:    "short-term and long-term career goals, learning focus and target industries",
		RelevanceBoost: 0.9,
	},

	// technical
	{
		Category:       "technical",
		Question:       "What programming languages do you know?",
		Keywords:       []string{"programming languages", "languages", "what languages", "coding languages"},
		ContextHint:    "languages with proficiency level and years of use",
		RelevanceBoost: 0.95,
	},
	{
		Category:       "technical",
		Question:       "What frameworks and technologies are you experienced with?",
		Keywords:       []string{"frameworks", "technologies", "tech stack", "tools", "what do you use"},
		ContextHint:    "frontend, backend, database, AI and deployment tooling from the skills section",
		RelevanceBoost: 0.95,
	},
	{
		Category:       "technical",
		Question:       "Describe your experience with React/Next.js",
		Keywords:       []string{"react", "nextjs", "next.js", "frontend", "ui development"},
		ContextHint:    "React and Next.js usage across projects, rendering modes and styling choices",
		RelevanceBoost: 0.92,
	},
	{
		Category:       "technical",
		Question:       "What databases have you worked with?",
		Keywords:       []string{"database", "sql", "postgresql", "data storage", "databases"},
		ContextHint:    "relational and vector databases, ORMs and caching layers in use",
		RelevanceBoost: 0.9,
	},
	{
		Category:       "technical",
		Question:       "Do you have experience with AI/Machine Learning?",
		Keywords:       []string{"ai", "machine learning", "ml", "artificial intelligence", "ai experience"},
		ContextHint:    "RAG system, vector search, embeddings and LLM integration work",
		RelevanceBoost: 0.88,
	},
	{
		Category:       "technical",
		Question:       "Have you worked with APIs?",
		Keywords:       []string{"api", "rest api", "api development", "backend api"},
		ContextHint:    "REST endpoints built, streaming responses and third-party API integrations",
		RelevanceBoost: 0.85,
	},

	// projects
	{
		Category:       "projects",
		Question:       "Tell me about your projects",
		Keywords:       []string{"projects", "what have you built", "portfolio", "applications"},
		ContextHint:    "project names, purpose, technologies and impact for each portfolio entry",
		RelevanceBoost: 0.93,
	},
	{
		Category:       "projects",
		Question:       "What's your most challenging project?",
		Keywords:       []string{"challenging project", "difficult project", "hardest project", "complex project"},
		ContextHint:    "the hardest project, the specific problems hit and how they were solved",
		RelevanceBoost: 0.9,
	},
	{
		Category:       "projects",
		Question:       "Have you worked on production applications?",
		Keywords:       []string{"production", "live applications", "deployed", "real users"},
		ContextHint:    "deployed applications, hosting platform and production practices",
		RelevanceBoost: 0.88,
	},

	// experience
	{
		Category:       "experience",
		Question:       "Tell me about your work experience",
		Keywords:       []string{"work experience", "internship", "job", "worked at", "previous role"},
		ContextHint:    "roles held, company context, responsibilities and STAR achievements",
		RelevanceBoost: 0.92,
	},
	{
		Category:       "experience",
		Question:       "Do you have experience working in a team?",
		Keywords:       []string{"team", "teamwork", "collaborate", "collaboration", "group project"},
		ContextHint:    "team structure in past roles and collaborative project work",
		RelevanceBoost: 0.85,
	},

	// achievements
	{
		Category:       "achievements",
		Question:       "What are your biggest achievements?",
		Keywords:       []string{"achievements", "accomplishments", "awards", "recognition", "proud of"},
		ContextHint:    "competition placements, awards and technical milestones with their numbers",
		RelevanceBoost: 0.95,
	},
	{
		Category:       "achievements",
		Question:       "Tell me about your competition experience",
		Keywords:       []string{"competition", "contest", "robotics", "hackathon", "steam challenge"},
		ContextHint:    "competitions entered, placement, field size and lessons learned",
		RelevanceBoost: 0.9,
	},

	// education
	{
		Category:       "education",
		Question:       "What's your educational background?",
		Keywords:       []string{"education", "school", "university", "degree", "studying"},
		ContextHint:    "university, degree, expected graduation and relevant coursework",
		RelevanceBoost: 0.88,
	},
	{
		Category:       "education",
		Question:       "How do you keep learning new technologies?",
		Keywords:       []string{"keep learning", "learn new", "self-taught", "stay updated", "continuous learning"},
		ContextHint:    "self-directed learning habits and current learning focus",
		RelevanceBoost: 0.8,
	},

	// behavioural
	{
		Category:       "behavioral",
		Question:       "What are your strengths and weaknesses?",
		Keywords:       []string{"strengths", "weaknesses", "strength", "weakness", "improve"},
		ContextHint:    "core traits, work ethic and honest growth areas",
		RelevanceBoost: 0.88,
	},
	{
		Category:       "behavioral",
		Question:       "How do you handle tight deadlines?",
		Keywords:       []string{"deadline", "deadlines", "pressure", "time management", "prioritize"},
		ContextHint:    "prioritisation approach and examples of delivering under pressure",
		RelevanceBoost: 0.82,
	},
	{
		Category:       "behavioral",
		Question:       "How do you approach debugging a difficult problem?",
		Keywords:       []string{"debugging", "debug", "problem solving", "troubleshoot", "bug"},
		ContextHint:    "problem-solving process and a concrete debugging story",
		RelevanceBoost: 0.82,
	},

	// logistics
	{
		Category:       "logistics",
		Question:       "What are your salary expectations?",
		Keywords:       []string{"salary expectations", "expected salary", "compensation", "pay range"},
		ContextHint:    "documented salary expectations and flexibility only",
		RelevanceBoost: 0.8,
	},
	{
		Category:       "logistics",
		Question:       "Are you open to remote work or relocation?",
		Keywords:       []string{"remote", "relocate", "relocation", "location", "on-site", "hybrid"},
		ContextHint:    "location preferences, relocation willingness and remote experience",
		RelevanceBoost: 0.8,
	},

	// tools
	{
		Category:       "tools",
		Question:       "What development tools do you use?",
		Keywords:       []string{"development tools", "ide", "editor", "git", "version control", "workflow"},
		ContextHint:    "editor, version control, deployment and debugging tools in daily use",
		RelevanceBoost: 0.8,
	},

	// company
	{
		Category:       "company",
		Question:       "Why do you want to work for us?",
		Keywords:       []string{"why this company", "why us", "interest in company"},
		ContextHint:    "what the candidate looks for in a team and the technologies they want to work with",
		RelevanceBoost: 0.75,
	},
	{
		Category:       "questions",
		Question:       "Do you have any questions for us?",
		Keywords:       []string{"questions for us", "any questions", "what questions"},
		ContextHint:    "thoughtful questions about the role, team stack and onboarding",
		RelevanceBoost: 0.85,
	},
}
